package settings

// Adjust returns the value that results from moving current by delta.
//
// Ranges move by delta*Step and clamp to [Min, Max]. Selects move through
// Options by delta and clamp at either end; a value missing from Options is
// treated as the first option. Toggles flip regardless of delta.
//
// Adjust performs no visibility or lockout checks.
func Adjust(def Definition, current Value, delta int) Value {
	switch def.Kind {
	case KindRange:
		step := def.Step
		if step <= 0 {
			step = 1
		}
		return Value{Number: clamp(current.Number+delta*step, def.Min, def.Max)}

	case KindSelect:
		if len(def.Options) == 0 {
			return current
		}
		idx := 0
		for i, opt := range def.Options {
			if opt == current.Choice {
				idx = i
				break
			}
		}
		idx = clamp(idx+delta, 0, len(def.Options)-1)
		return Value{Choice: def.Options[idx]}

	case KindToggle:
		return Value{Flag: !current.Flag}
	}

	return current
}
