package tisearch

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickBoolDefault is pickBool for flags whose default is true: an explicitly
// set flag wins, then local, then global, then def.
func pickBoolDefault(changed, cli bool, local, global *bool, def bool) bool {
	if changed {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return def
}
