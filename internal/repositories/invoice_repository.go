package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"invoice-backend/internal/models"
	"invoice-backend/internal/timeutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const counterKey = "invoice_counter"

type InvoiceRepository struct {
	DB     *pgxpool.Pool
	Prefix string
}

func NewInvoiceRepository(db *pgxpool.Pool, prefix string) *InvoiceRepository {
	return &InvoiceRepository{DB: db, Prefix: prefix}
}

// nextCounter reads the invoice counter inside tx, locking the row until
// commit. A missing counter is initialized to 1 rather than failing.
func (r *InvoiceRepository) nextCounter(ctx context.Context, tx pgx.Tx) (int, error) {
	var value string
	err := tx.QueryRow(ctx,
		`SELECT meta_value FROM meta WHERE meta_key=$1 FOR UPDATE`, counterKey).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx,
			`INSERT INTO meta (meta_key, meta_value) VALUES ($1, '1')`, counterKey)
		if err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	counter, err := strconv.Atoi(value)
	if err != nil || counter < 1 {
		counter = 1
	}
	return counter, nil
}

// Create persists a new invoice. The counter read, number assignment, insert
// and counter increment all run in one transaction, so a failed insert never
// leaves the counter bumped and a number is never handed out twice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	counter, err := r.nextCounter(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to read invoice counter: %w", err)
	}

	date := timeutil.DateOrToday(inv.Date)
	inv.Date = date.Format(timeutil.DateLayout)
	inv.InvoiceNumber = FormatInvoiceNumber(r.Prefix, date, counter)

	sellerJSON, err := json.Marshal(inv.Seller)
	if err != nil {
		return fmt.Errorf("failed to encode seller snapshot: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, invoice_date, customer_name, customer_contact,
		        customer_address, seller, subtotal, total, payment_terms, currency, show_pan_no)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		inv.InvoiceNumber, date, inv.Customer.Name, inv.Customer.Contact,
		inv.Customer.Address, sellerJSON, inv.Subtotal, inv.Total,
		inv.PaymentTerms, inv.Currency, inv.ShowPanNo,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, inv.ID, inv.Lines); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE meta SET meta_value=$1, updated_at=CURRENT_TIMESTAMP WHERE meta_key=$2`,
		strconv.Itoa(counter+1), counterKey)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update overwrites an existing invoice in place. The invoice number and
// seller snapshot columns are deliberately left out of the UPDATE: both are
// frozen at creation.
func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	date := timeutil.DateOrToday(inv.Date)
	inv.Date = date.Format(timeutil.DateLayout)

	tag, err := tx.Exec(ctx,
		`UPDATE invoices SET invoice_date=$1, customer_name=$2, customer_contact=$3,
		        customer_address=$4, subtotal=$5, total=$6, payment_terms=$7,
		        currency=$8, show_pan_no=$9
		 WHERE id=$10`,
		date, inv.Customer.Name, inv.Customer.Contact, inv.Customer.Address,
		inv.Subtotal, inv.Total, inv.PaymentTerms, inv.Currency, inv.ShowPanNo, inv.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM invoice_lines WHERE invoice_id=$1`, inv.ID); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, inv.ID, inv.Lines); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, invoiceID int, lines []models.Line) error {
	for i, line := range lines {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_lines(invoice_id, position, item_id, description, qty, price, total)
			 VALUES($1, $2, $3, $4, $5, $6, $7)`,
			invoiceID, i, line.ItemID, line.Description, line.Qty, line.Price, line.Total)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	return r.getBy(ctx, `WHERE id=$1`, id)
}

func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return r.getBy(ctx, `WHERE invoice_number=$1`, number)
}

func (r *InvoiceRepository) getBy(ctx context.Context, where string, arg interface{}) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, invoice_number, invoice_date, customer_name, customer_contact,
		        customer_address, seller, subtotal, total, payment_terms, currency,
		        show_pan_no, created_at
		 FROM invoices `+where, arg)

	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines[inv.ID]
	return inv, nil
}

// List returns all invoices, newest date first. Invoices sharing a date are
// ordered by descending id (most recently created first).
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_number, invoice_date, customer_name, customer_contact,
		        customer_address, seller, subtotal, total, payment_terms, currency,
		        show_pan_no, created_at
		 FROM invoices ORDER BY invoice_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, 0)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		inv.Lines = lines[inv.ID]
	}
	return invoices, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// loadLines fetches lines for one invoice, or for all invoices when id is 0,
// grouped by invoice id in stored order.
func (r *InvoiceRepository) loadLines(ctx context.Context, id int) (map[int][]models.Line, error) {
	query := `SELECT invoice_id, item_id, description, qty, price, total
	          FROM invoice_lines`
	args := []interface{}{}
	if id != 0 {
		query += ` WHERE invoice_id=$1`
		args = append(args, id)
	}
	query += ` ORDER BY invoice_id, position`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make(map[int][]models.Line)
	for rows.Next() {
		var invoiceID int
		var line models.Line
		err := rows.Scan(&invoiceID, &line.ItemID, &line.Description,
			&line.Qty, &line.Price, &line.Total)
		if err != nil {
			return nil, err
		}
		lines[invoiceID] = append(lines[invoiceID], line)
	}
	return lines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	var inv models.Invoice
	var date time.Time
	var sellerJSON []byte

	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &date, &inv.Customer.Name,
		&inv.Customer.Contact, &inv.Customer.Address, &sellerJSON, &inv.Subtotal,
		&inv.Total, &inv.PaymentTerms, &inv.Currency, &inv.ShowPanNo, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}

	inv.Date = date.Format(timeutil.DateLayout)
	if len(sellerJSON) > 0 {
		if err := json.Unmarshal(sellerJSON, &inv.Seller); err != nil {
			return nil, fmt.Errorf("failed to decode seller snapshot: %w", err)
		}
	}
	return &inv, nil
}
