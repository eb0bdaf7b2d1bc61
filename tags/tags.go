package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Enemy      = donburi.NewTag().SetName("Enemy")
	Projectile = donburi.NewTag().SetName("Projectile")
	Comet      = donburi.NewTag().SetName("Comet")
	Powerup    = donburi.NewTag().SetName("Powerup")
	Effect     = donburi.NewTag().SetName("Effect")
)

// Resolv tags for collision shapes
const (
	ResolvPlayer     = "Player"
	ResolvEnemy      = "Enemy"
	ResolvPlayerShot = "PlayerShot"
	ResolvEnemyShot  = "EnemyShot"
	ResolvComet      = "Comet"
	ResolvPowerup    = "Powerup"
)
