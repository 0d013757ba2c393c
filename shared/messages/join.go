package messages

// JoinRequest is sent by a client after connecting to enter a room.
// The server replicates the identity to every client in the room.
type JoinRequest struct {
	Version     string
	UserID      string
	DisplayName string
	Rank        string
	Role        string
	World       string
	AvatarKey   uint32
}

// AvatarPose is streamed by a client whenever its root pose or avatar changes.
type AvatarPose struct {
	X, Y, Z   float64
	Yaw       float64
	AvatarKey uint32
}
