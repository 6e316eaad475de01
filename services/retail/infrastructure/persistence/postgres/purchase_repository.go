package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/retailstore/pkg/database"
	"github.com/ghuser/retailstore/pkg/events"
	retaildomain "github.com/ghuser/retailstore/services/retail/domain"
	domainevents "github.com/ghuser/retailstore/services/retail/domain/events"
	"github.com/ghuser/retailstore/services/retail/domain/models"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pgForeignKeyViolation = "23503"

// PurchaseRepository implements repositories.PurchaseRepository against PostgreSQL.
type PurchaseRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewPurchaseRepository returns a PurchaseRepository backed by the given pool
// and event bus. The bus publishes PurchaseRecordedEvents inside the same
// transaction as the purchase write.
func NewPurchaseRepository(db *database.Database, bus *events.EventBus) *PurchaseRepository {
	return &PurchaseRepository{db: db, bus: bus}
}

// Create persists the purchase, every line item, and the PurchaseRecorded
// event in one transaction. The customer and product foreign keys re-assert
// referential integrity at commit time: an entity deleted since validation
// aborts the whole write with the matching not-found sentinel, never leaving
// a purchase without its line items or a dangling reference.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := lockProducts(ctx, tx, purchase.ProductCodes()); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx,
			`INSERT INTO purchases (purchase_date, customer_id) VALUES ($1, $2) RETURNING id`,
			purchase.PurchaseDate, purchase.CustomerID,
		).Scan(&purchase.ID)
		if err != nil {
			return fmt.Errorf("insert purchase: %w", mapIntegrityError(err))
		}

		for _, line := range purchase.Lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO purchase_products (purchase_id, product_code, quantity) VALUES ($1, $2, $3)`,
				purchase.ID, line.ProductCode.String(), line.Quantity,
			)
			if err != nil {
				return fmt.Errorf("insert line item %s: %w", line.ProductCode, mapIntegrityError(err))
			}
		}

		if r.bus != nil {
			if err := r.publishRecorded(tx, purchase); err != nil {
				return fmt.Errorf("publish purchase recorded: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a purchase with its full line-item set.
// Returns ErrPurchaseNotFound if absent.
func (r *PurchaseRepository) GetByID(ctx context.Context, id int64) (*models.Purchase, error) {
	var p models.Purchase
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, purchase_date, customer_id FROM purchases WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.PurchaseDate, &p.CustomerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, retaildomain.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("query purchase: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT product_code, quantity FROM purchase_products WHERE purchase_id = $1 ORDER BY product_code`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query line items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code string
			line models.LineItem
		)
		if err := rows.Scan(&code, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		line.ProductCode = models.ProductCode(code)
		p.Lines = append(p.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepository) publishRecorded(tx *sql.Tx, purchase *models.Purchase) error {
	event := domainevents.PurchaseRecordedEvent{
		EventID:    uuid.New(),
		Version:    1,
		PurchaseID: purchase.ID,
		CustomerID: purchase.CustomerID,
		Lines:      make([]domainevents.EventLine, len(purchase.Lines)),
		OccurredAt: purchase.PurchaseDate,
	}
	for i, l := range purchase.Lines {
		event.Lines[i] = domainevents.EventLine{
			ProductCode: l.ProductCode.String(),
			Quantity:    l.Quantity,
		}
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicPurchaseRecorded, msg)
}

// lockProducts re-checks that every referenced product still exists and takes
// a share lock on the rows so they cannot be deleted before the transaction
// commits. purchase_products deliberately has no product foreign key (deleted
// products keep their history), so this lock is what re-asserts catalog
// integrity between validation and commit.
func lockProducts(ctx context.Context, tx *sql.Tx, codes []models.ProductCode) error {
	raw := make([]string, len(codes))
	for i, c := range codes {
		raw[i] = c.String()
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT code FROM products WHERE code = ANY($1) FOR SHARE`,
		raw,
	)
	if err != nil {
		return fmt.Errorf("lock products: %w", err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return fmt.Errorf("scan locked product: %w", err)
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate locked products: %w", err)
	}
	if found != len(codes) {
		return fmt.Errorf("%w: a referenced product vanished before commit", retaildomain.ErrProductNotFound)
	}
	return nil
}

// mapIntegrityError converts a foreign key violation raised at commit time
// into the sentinel for the entity that vanished between validation and write.
func mapIntegrityError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return err
	}
	if strings.Contains(pgErr.ConstraintName, "customer") {
		return retaildomain.ErrCustomerNotFound
	}
	return err
}
