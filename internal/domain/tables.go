package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Relay
	&Pairing{},
	&Subscription{},
	&Message{},
	&Preference{},
}
