package spec

const (
	// Version identifies the JSON output format's schema version, stamped
	// onto every run's metadata. Bump it when the output shape changes in a
	// breaking way.
	Version = "1.0"
)
