// Package config centralizes all tunable game parameters.
//
// Distances are field units. The terminal frontend maps one character cell to
// CellWidth x CellHeight units, so a 160x50 terminal is a 1280x800 field.
package config

import "time"

// Field units per terminal cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Field used when no size source is available.
const (
	DefaultFieldWidth  = 1280.0
	DefaultFieldHeight = 800.0
)

// Simulation timing
const (
	TickSeconds     = 1.0 / 120 // Fixed physics step
	MaxFrameSeconds = 0.05      // Clamp for a stalled frame
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	FPSSampleSeconds      = 0.5
)

// Scoring
const (
	ScoreLargeAsteroid  = 20
	ScoreMediumAsteroid = 50
	ScoreSmallAsteroid  = 100
)

// Session
const (
	InitialLives  = 3
	MaxLives      = 5
	BonusEvery    = 5 // Levels between extra lives
	FirstLevel    = 1
	BaseAsteroids = 3 // Level n spawns BaseAsteroids + n large asteroids
)

// Ship
const (
	ShipRadius           = 16.0
	ShipRotationSpeed    = 3.4   // Radians per second
	ShipThrust           = 300.0 // Units per second²
	ShipDamping          = 0.995 // Per 1/60 s
	ShipSpawnInvincible  = 2.0   // Seconds
	ShipThrustCueRate    = 7.0   // Expected thrust cues per second while thrusting
	PlayerBlinkFrequency = 10.0  // Hz
)

// Weapon
const (
	MuzzleSpeed  = 700.0
	FireCooldown = 0.17
	BulletLife   = 0.9
	BulletRadius = 2.5
)

// Hyperspace
const (
	HyperspaceTries      = 40
	HyperspaceMargin     = 80.0
	HyperspaceInvincible = 1.5
)

// Asteroids
const (
	AsteroidRadiusLarge  = 46.0
	AsteroidRadiusMedium = 28.0
	AsteroidRadiusSmall  = 16.0
	AsteroidMinSpeed     = 20.0
	AsteroidMaxSpeed     = 70.0
	AsteroidMinVertices  = 9
	AsteroidMaxVertices  = 14 // Exclusive
	AsteroidShapeMin     = 0.78
	AsteroidShapeMax     = 1.12
	ShipHitboxScale      = 0.85 // Asteroid radius factor used against the ship
	SpawnSafeRadius      = 160.0
	SpawnPlacementTries  = 100
)

// Particles
const (
	ParticleDecay = 0.98 // Velocity factor per tick

	ThrustSpread  = 40.0
	ThrustDrag    = 0.1 // Share of ship velocity subtracted from trail particles
	ThrustLifeMin = 0.18
	ThrustLifeMax = 0.35

	BulletDebrisCount   = 16
	BulletDebrisSpeed   = 250.0
	BulletDebrisLifeMin = 0.18
	BulletDebrisLifeMax = 0.45

	ShipDebrisCount   = 24
	ShipDebrisSpeed   = 220.0
	ShipDebrisLifeMin = 0.25
	ShipDebrisLifeMax = 0.6
)

// Inactivity (SSH sessions)
const (
	InactivityWarnSeconds       = 90
	InactivityDisconnectSeconds = 120
)
