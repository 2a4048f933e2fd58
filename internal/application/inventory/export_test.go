package inventory

import "time"

// Relojes fijos para las pruebas del paquete externo.

func (uc *ExpiryUseCase) WithClock(now func() time.Time) *ExpiryUseCase {
	uc.now = now
	return uc
}

func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

func (uc *RegisterMovementUseCase) WithClock(now func() time.Time) *RegisterMovementUseCase {
	uc.now = now
	return uc
}

func (uc *LotUseCase) WithClock(now func() time.Time) *LotUseCase {
	uc.now = now
	return uc
}
