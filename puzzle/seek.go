package puzzle

// Seek steers pos toward target at a fixed speed. It returns the velocity to
// apply and whether pos is already closer than within, in which case the
// velocity is zero.
func Seek(pos, target Vec, speed, within float64) (Vec, bool) {
	delta := target.Sub(pos)
	if delta.Len() < within {
		return Vec{}, true
	}
	return delta.Normalize().Scale(speed), false
}

// Seek emits the steering velocity for mover. Once mover is within range it
// is stopped and arrive, if any, runs.
func (t *Tick) Seek(mover Body, target Vec, speed, within float64, arrive func()) {
	vel, arrived := Seek(mover.Pos, target, speed, within)
	t.Emit(SetVelocity(mover.ID, vel))
	if arrived && arrive != nil {
		arrive()
	}
}
