// Package passcode provides the passcode record store for the Gatelogic
// entry service.
//
// A passcode record binds an integer identity to a secret string, plus a
// display name and access timestamps. Records are created only by the
// registration protocol (see the protocol package), updated by the admin
// API or by a successful verification (last access only), and deleted
// only by an explicit administrative delete. There is no expiry.
//
// Ids are assigned 1-based, next = max + 1, and are never reused or
// mutated. Secrets are compared by exact string equality with no hashing;
// this matches the keypad devices' wire behaviour and is a known,
// deliberate limitation of the protocol.
//
// # Usage
//
//	repo := passcode.NewSQLiteRepository(db.DB)
//	id, err := repo.Insert(ctx, "483921")
//	rec, err := repo.Get(ctx, id)
//
// # Thread Safety
//
// The repository is safe for concurrent use; every operation runs as a
// short-lived statement or single transaction on the shared *sql.DB.
package passcode
