package types

// Actor is the identity attributed to created/modified records and
// audit events. It is resolved once per session from the OS login name
// and passed explicitly into every write.
type Actor struct {
	ID          int64
	SystemName  string
	DisplayName string
}

// Nobody is the zero actor used when no identity could be resolved.
// Audit events written with it carry a NULL user id.
var Nobody = Actor{}
