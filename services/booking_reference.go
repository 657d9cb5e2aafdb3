package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"hotelpms/constants"
	apperrors "hotelpms/errors"
	"hotelpms/store"

	"github.com/bwmarrin/snowflake"
)

var referenceSpace = big.NewInt(1_000_000)

// ReferenceGenerator sinh mã đặt phòng 6 chữ số, kiểm tra trùng trong cùng transaction.
// Hết số lần thử thì dùng snowflake id để luôn có mã duy nhất.
type ReferenceGenerator struct {
	maxAttempts int
	node        *snowflake.Node
	random      func() (string, error)
}

func NewReferenceGenerator(maxAttempts int, nodeID int64) (*ReferenceGenerator, error) {
	if maxAttempts < 1 {
		maxAttempts = 20
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("create snowflake node: %w", err)
	}
	return &ReferenceGenerator{
		maxAttempts: maxAttempts,
		node:        node,
		random:      randomReference,
	}, nil
}

func randomReference() (string, error) {
	n, err := rand.Int(rand.Reader, referenceSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", constants.BookingReferenceLength, n.Int64()), nil
}

// Next trả về mã chưa tồn tại trong tx
func (g *ReferenceGenerator) Next(ctx context.Context, tx store.Store) (string, error) {
	for i := 0; i < g.maxAttempts; i++ {
		ref, err := g.random()
		if err != nil {
			return "", apperrors.NewInternalError("failed to generate booking reference", err)
		}
		exists, err := tx.BookingReferenceExists(ctx, ref)
		if err != nil {
			return "", apperrors.NewInternalError("failed to check booking reference", err)
		}
		if !exists {
			return ref, nil
		}
	}
	return g.node.Generate().String(), nil
}
