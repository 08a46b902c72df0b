package lander

// Planetary and airframe constants. Figures follow the classic Cambridge
// Mars lander exercise so trajectories stay comparable with the reference
// trajectories published for it.
const (
	// GravityConst is the universal gravitational constant (N m^2 kg^-2).
	GravityConst = 6.673e-11
	// MarsMass in kg.
	MarsMass = 6.42e23
	// MarsRadius in m.
	MarsRadius = 3386000.0
	// MarsSurfaceGravity in m/s^2, used only to size the engine.
	MarsSurfaceGravity = 3.71
	// Exosphere is the altitude in m above which atmospheric density is zero.
	Exosphere = 200000.0

	// DryMass is the lander mass with empty tanks (kg).
	DryMass = 100.0
	// FuelCapacity in litres.
	FuelCapacity = 100.0
	// FuelRateMax is the fuel flow at full throttle (litres/s).
	FuelRateMax = 0.5
	// FuelDensity in kg/litre.
	FuelDensity = 1.0
	// LanderSize is the body shell radius (m).
	LanderSize = 1.0

	DragCoefBody  = 1.0
	DragCoefChute = 2.0
	// ChuteArea is the parachute reference area (m^2): five square panels,
	// each (2 * LanderSize) on a side.
	ChuteArea = 20.0

	// MaxParachuteDrag is the canopy's structural drag limit (N).
	MaxParachuteDrag = 20000.0
	// MaxParachuteSpeed is the fastest airspeed at which the chute may
	// open (m/s).
	MaxParachuteSpeed = 500.0

	// MaxDescentRate and MaxGroundSpeed bound a survivable touchdown (m/s).
	MaxDescentRate = 1.0
	MaxGroundSpeed = 0.5

	// MaxThrust is the full-throttle engine output (N), sized at 1.5x the
	// fully fuelled weight at the Martian surface.
	MaxThrust = 1.5 * (FuelDensity*FuelCapacity + DryMass) * MarsSurfaceGravity
)
