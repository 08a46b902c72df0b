package lander

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// MarsEnvironment is the stock [Environment]: exponential atmosphere with an
// 11 km scale height, Euler-angle thrust transform, and the exercise's chute
// envelope figures.
type MarsEnvironment struct{}

const atmosphereScaleHeight = 11000.0

func (MarsEnvironment) AtmosphericDensity(pos r3.Vec) float64 {
	alt := r3.Norm(pos) - MarsRadius
	if alt >= Exosphere {
		return 0
	}
	return 0.017 * math.Exp(-alt/atmosphereScaleHeight)
}

func (MarsEnvironment) ThrustWorld(orientation r3.Vec, throttle float64) r3.Vec {
	if throttle == 0 {
		return r3.Vec{}
	}
	return r3.Scale(throttle*MaxThrust, thrustAxis(orientation))
}

// thrustAxis rotates the body +z thrust axis into the world frame. The xyz
// Euler angles are applied as Rz(psi) Ry(theta) Rx(phi), angles in degrees.
func thrustAxis(o r3.Vec) r3.Vec {
	phi := o.X * math.Pi / 180
	theta := o.Y * math.Pi / 180
	psi := o.Z * math.Pi / 180

	// Rx(phi) applied to (0,0,1)
	x, y, z := 0.0, -math.Sin(phi), math.Cos(phi)
	// Ry(theta)
	x, z = x*math.Cos(theta)+z*math.Sin(theta), -x*math.Sin(theta)+z*math.Cos(theta)
	// Rz(psi)
	x, y = x*math.Cos(psi)-y*math.Sin(psi), x*math.Sin(psi)+y*math.Cos(psi)

	return r3.Vec{X: x, Y: y, Z: z}
}

func (m MarsEnvironment) SafeToDeployParachute(c *Craft) bool {
	drag := 0.5 * m.AtmosphericDensity(c.Position) * DragCoefChute * ChuteArea * r3.Norm2(c.Velocity)
	if drag > MaxParachuteDrag {
		return false
	}
	return r3.Norm(c.Velocity) < MaxParachuteSpeed
}

// StabilizeAttitude points the thrust axis along the outward radial so the
// engine brakes the descent. Chosen so thrustAxis(orientation) equals the
// radial unit vector; yaw is left at zero.
func (MarsEnvironment) StabilizeAttitude(c *Craft) {
	r := r3.Norm(c.Position)
	if r == 0 {
		return
	}
	n := r3.Scale(1/r, c.Position)
	phi := math.Asin(-n.Y) * 180 / math.Pi
	theta := math.Atan2(n.X, n.Z) * 180 / math.Pi
	c.Orientation = r3.Vec{X: phi, Y: theta}
}
