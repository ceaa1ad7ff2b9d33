package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/prism/pkg/tracer"
)

// minAngularVelocity is the speed below which an axis counts as stopped, so
// a settled camera stops retracing.
const minAngularVelocity = 1e-3

// RotationAxis tracks the angular velocity of one camera axis with spring decay
type RotationAxis struct {
	Velocity  float64 // camera rotation units per frame
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Step returns the rotation to apply this frame and decays the velocity
// toward 0.
func (a *RotationAxis) Step() float64 {
	delta := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	if a.Velocity > -minAngularVelocity && a.Velocity < minAngularVelocity {
		a.Velocity, a.velAccel = 0, 0
	}
	if delta > -minAngularVelocity && delta < minAngularVelocity {
		return 0
	}
	return delta
}

// CameraMotion holds the look velocities and held movement keys of the
// interactive camera.
type CameraMotion struct {
	Pitch, Yaw RotationAxis // polar angle, azimuth

	Forward float64 // +1 forward, -1 backward
	Strafe  float64 // +1 right, -1 left

	fps int
}

func NewCameraMotion(fps int) *CameraMotion {
	m := &CameraMotion{fps: fps}
	m.Reset()
	return m
}

// ApplyImpulse adds angular velocity in camera rotation units per frame.
func (m *CameraMotion) ApplyImpulse(pitch, yaw float64) {
	m.Pitch.Velocity += pitch
	m.Yaw.Velocity += yaw
}

func (m *CameraMotion) Reset() {
	m.Pitch = NewRotationAxis(m.fps)
	m.Yaw = NewRotationAxis(m.fps)
	m.Forward, m.Strafe = 0, 0
}

// Apply moves and turns cam for a frame lasting dt seconds. Held keys decay
// because key release events are not reported by every terminal.
func (m *CameraMotion) Apply(cam *tracer.Camera, dt float64) {
	switch {
	case m.Forward > 0:
		cam.MoveForward(dt * m.Forward)
	case m.Forward < 0:
		cam.MoveBackward(-dt * m.Forward)
	}
	switch {
	case m.Strafe > 0:
		cam.MoveRight(dt * m.Strafe)
	case m.Strafe < 0:
		cam.MoveLeft(-dt * m.Strafe)
	}
	m.Forward = decayInput(m.Forward)
	m.Strafe = decayInput(m.Strafe)

	if d := m.Pitch.Step(); d != 0 {
		cam.RotateAroundX(d)
	}
	if d := m.Yaw.Step(); d != 0 {
		cam.RotateAroundZ(d)
	}
}

func decayInput(v float64) float64 {
	v *= 0.9
	if v > -0.01 && v < 0.01 {
		return 0
	}
	return v
}
