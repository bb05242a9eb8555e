package distribution

import (
	"mudra/internal/models"
)

// Request is a pre-authorized, pre-validated distribution. The
// orchestrating service has already resolved both accounts, checked
// roles against the authorization table and verified daily limits;
// the engine re-verifies balance inside the atomic unit.
type Request struct {
	Sender   *models.User
	Receiver *models.User
	Kind     models.TransactionKind
	Amount   int64
}

// Result carries the ledger records created for one distribution,
// with their persisted identity and timestamp. Fee and Commission are
// nil for simple-move kinds.
type Result struct {
	Main       *models.Transaction `json:"main"`
	Fee        *models.Transaction `json:"fee,omitempty"`
	Commission *models.Transaction `json:"commission,omitempty"`
}

// Records returns the created records in ledger order.
func (r *Result) Records() []*models.Transaction {
	if r.Fee == nil {
		return []*models.Transaction{r.Main}
	}
	return []*models.Transaction{r.Fee, r.Main, r.Commission}
}
