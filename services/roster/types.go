package roster

// Player is one clan member as listed in the roster.
type Player struct {
	Network     int64  `json:"membershipType" firestore:"membershipType"`
	ID          string `json:"membershipId" firestore:"membershipId"`
	DisplayName string `json:"displayName" firestore:"displayName"`
}

// Member mirrors the clan member export, which nests the player under destinyUserInfo.
type Member struct {
	DestinyUserInfo Player `json:"destinyUserInfo" firestore:"destinyUserInfo"`
}
