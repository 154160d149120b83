package redisx

import "time"

const (
	// Session cart: cart:{session_id} -> JSON cart document
	KeyCart = "cart:%s"

	// Cached unfiltered list snapshot per collection: snapshot:{kind}
	KeySnapshot = "snapshot:%s"

	// Pub/sub channel carrying change notifications for list views.
	ChannelChanges = "mercadito:changes"
)

var (
	TTLSnapshot = 30 * time.Second
)
