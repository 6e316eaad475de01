// Package services contains stateless domain services for the retail bounded
// context. They operate purely on domain types and have zero infrastructure
// dependencies beyond the callbacks they are handed.
package services

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// maxCodeAttempts bounds the generate-and-check loop. The code space holds
// 16^8 values, so hitting the bound means the existence check is broken, not
// that the catalog is full.
const maxCodeAttempts = 16

// CodeExists reports whether a candidate product code is already in use.
type CodeExists func(ctx context.Context, code models.ProductCode) (bool, error)

// GenerateProductCode produces an unused 8-character uppercase hex product
// code. Candidates are drawn from fresh random UUIDs and checked against
// exists until a free value is found.
//
// The check is advisory only: two concurrent callers can both observe the
// same candidate as free. The catalog store's unique constraint is the real
// guard; callers must treat ErrProductCodeTaken from the subsequent insert as
// a cue to regenerate, not as a terminal failure.
func GenerateProductCode(ctx context.Context, exists CodeExists) (models.ProductCode, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := randomCode()
		taken, err := exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code %s: %w", code, err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", retaildomain.ErrCodeSpaceExhausted
}

// randomCode derives a code from the first 4 bytes of a random UUID,
// rendered as uppercase hex.
func randomCode() models.ProductCode {
	u := uuid.New()
	return models.ProductCode(strings.ToUpper(hex.EncodeToString(u[:4])))
}
