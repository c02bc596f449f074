package components

// Vitals stores the health and defense of anything that can be attacked.
type Vitals struct {
	Health    float64
	MaxHealth float64
	Defense   float64
}

// DamageResult describes the effect of one ApplyDamage call.
type DamageResult struct {
	// Applied is false when the target was already dead; nothing changed.
	Applied bool
	// Dealt is the health actually removed.
	Dealt float64
	// Killed is true only for the call that brought health to 0.
	Killed bool
}

// Reset restores full health with the given maximum and defense.
func (v *Vitals) Reset(maxHealth, defense float64) {
	v.MaxHealth = maxHealth
	v.Health = maxHealth
	v.Defense = defense
}

// IsAlive reports whether health is above 0.
func (v *Vitals) IsAlive() bool {
	return v.Health > 0
}

// ApplyDamage subtracts max(0, raw - defense), clamping health at 0.
// Damage to a dead entity is ignored, so death is reported exactly once.
func (v *Vitals) ApplyDamage(raw float64) DamageResult {
	if v.Health <= 0 {
		return DamageResult{}
	}
	final := max(0, raw-v.Defense)
	dealt := min(final, v.Health)
	v.Health -= dealt
	if v.Health < 0 {
		v.Health = 0
	}
	return DamageResult{Applied: true, Dealt: dealt, Killed: v.Health == 0}
}

// Heal adds amount up to MaxHealth and returns the health restored.
// Dead entities cannot be healed.
func (v *Vitals) Heal(amount float64) float64 {
	if v.Health <= 0 || amount <= 0 {
		return 0
	}
	healed := min(amount, v.MaxHealth-v.Health)
	if healed < 0 {
		return 0
	}
	v.Health += healed
	return healed
}

// Ratio returns Health / MaxHealth in [0, 1].
func (v *Vitals) Ratio() float64 {
	if v.MaxHealth <= 0 {
		return 0
	}
	return v.Health / v.MaxHealth
}
