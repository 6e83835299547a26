package vpaid

// ProtocolVersion is the highest protocol version this unit supports.
// HandshakeVersion always returns it; compatibility checking is the
// host's responsibility.
const ProtocolVersion = "2.0"

// Version information for the vpaid module.
const (
	// Version is the current version of the vpaid module.
	Version = "1.0.0"

	// MinCompatibleVersion is the minimum version that is compatible with this version.
	MinCompatibleVersion = "1.0.0"
)
