package billing

import "time"

func (uc *CreateInvoiceUseCase) WithClock(now func() time.Time) *CreateInvoiceUseCase {
	uc.now = now
	return uc
}
