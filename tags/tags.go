package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Avatar     = donburi.NewTag().SetName("Avatar")
	Bone       = donburi.NewTag().SetName("Bone")
	MainCamera = donburi.NewTag().SetName("MainCamera")
	Bot        = donburi.NewTag().SetName("Bot")
	Remote     = donburi.NewTag().SetName("Remote")
)
