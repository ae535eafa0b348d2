package actuator

// Fake records actuator commands for tests.
type Fake struct {
	HeaterOn  bool
	WarningOn bool
	Closed    bool

	// HeaterHistory records every SetHeater value in call order.
	HeaterHistory []bool
	// WarningHistory records every SetWarning value in call order.
	WarningHistory []bool

	// SetError, if set, is returned by SetHeater and SetWarning.
	SetError error
}

func (f *Fake) SetHeater(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.HeaterOn = on
	f.HeaterHistory = append(f.HeaterHistory, on)
	return nil
}

func (f *Fake) SetWarning(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.WarningOn = on
	f.WarningHistory = append(f.WarningHistory, on)
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
