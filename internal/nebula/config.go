package nebula

// Field is a repulsion field around recent pointer positions.
type Field struct {
	Cutoff   float64
	Strength float64
}

// Config describes one background. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Particles int
	// BrightChance is the probability a particle is a pulsing "bright" star.
	BrightChance float64
	Background   Color
	Blobs        []Blob

	Interactive   bool
	ReducedMotion bool

	TrailCap      int
	TrailDecay    float64
	ParticleField Field
	BlobField     Field

	// Seed feeds the particle layout. Zero picks a random seed at mount.
	Seed uint64
}

const (
	DefaultParticles    = 400
	DefaultBrightChance = 0.07
	DefaultTrailCap     = 40
	DefaultTrailDecay   = 0.015

	// Drift amplitudes of a blob's orbit around its anchor, in pixels.
	blobDriftX = 80
	blobDriftY = 60

	// Particles larger than this get a soft halo.
	haloThreshold = 0.8
	// Bright particles above this brightness draw a cross glint.
	glintThreshold = 0.6
)

// DefaultBackground is the deep-space clear colour (#0a0a14).
var DefaultBackground = RGB(0x0a, 0x0a, 0x14)

func DefaultConfig() Config {
	return Config{
		Particles:     DefaultParticles,
		BrightChance:  DefaultBrightChance,
		Background:    DefaultBackground,
		Blobs:         DefaultBlobs(),
		Interactive:   true,
		TrailCap:      DefaultTrailCap,
		TrailDecay:    DefaultTrailDecay,
		ParticleField: Field{Cutoff: 200, Strength: 8},
		BlobField:     Field{Cutoff: 180, Strength: 12},
	}
}
