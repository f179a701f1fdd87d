package repositories

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"wanderlite.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// Booking table variants. Real deployments carry exactly one of these.

func createBookingsModern(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		service_type TEXT NOT NULL,
		booking_ref TEXT,
		service_details TEXT,
		created_at DATETIME
	);`)
}

func createBookingsLegacy(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		reference TEXT,
		data TEXT,
		created_at DATETIME
	);`)
}

func createBookingsMinimal(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		data TEXT,
		created_at DATETIME
	);`)
}

// Payment table variants.

func createPaymentsModern(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		booking_id TEXT,
		user_id TEXT,
		amount REAL NOT NULL,
		currency TEXT,
		method TEXT,
		status TEXT NOT NULL,
		external_ref TEXT,
		created_at DATETIME
	);`)
}

// createPaymentsLegacy has no ownership column; payments link to bookings
// only through the reference string.
func createPaymentsLegacy(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		booking_ref TEXT,
		amount REAL NOT NULL,
		currency TEXT,
		method TEXT,
		status TEXT NOT NULL,
		external_ref TEXT,
		created_at DATETIME
	);`)
}

func createPaymentsMinimal(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		user_id TEXT,
		data TEXT,
		created_at DATETIME
	);`)
}

// User table variants.

func createUsersTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT,
		is_kyc_completed BOOLEAN DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUsersTableNoKYCFlag(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

// Stable tables.

func createKYCTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE kyc_details (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		date_of_birth TEXT,
		nationality TEXT,
		document_type TEXT,
		document_number TEXT,
		doc_front_path TEXT,
		doc_back_path TEXT,
		selfie_path TEXT,
		verification_status TEXT NOT NULL DEFAULT 'pending',
		submitted_at DATETIME,
		verified_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE kyc_uploads (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT,
		path TEXT NOT NULL,
		uploaded_at DATETIME
	);`)
}

func createKYCAuditLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE kyc_audit_logs (
		id TEXT PRIMARY KEY,
		admin_id TEXT NOT NULL,
		action TEXT NOT NULL,
		target_type TEXT NOT NULL,
		target_id TEXT NOT NULL,
		note TEXT,
		source_ip TEXT,
		created_at DATETIME
	);`)
}

// createForeignKYCAuditLogTable creates a kyc_audit_logs table whose
// columns do not match the expected layout, as left behind by an unrelated
// deployment. Inserts against it fail even though the table exists.
func createForeignKYCAuditLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE kyc_audit_logs (
		id TEXT PRIMARY KEY,
		payload TEXT
	);`)
}

func createAdminActionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE admin_actions (
		id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL,
		action_type TEXT NOT NULL,
		entity TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		detail TEXT,
		ip_address TEXT,
		created_at DATETIME
	);`)
}

func createTripTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE trips (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		destination TEXT NOT NULL,
		days INTEGER NOT NULL,
		budget TEXT,
		currency TEXT,
		total_cost REAL,
		start_date DATETIME,
		end_date DATETIME,
		travelers INTEGER,
		itinerary_json TEXT DEFAULT '[]',
		images_json TEXT DEFAULT '[]',
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE checklist_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		booking_id TEXT,
		trip_id TEXT,
		item_name TEXT NOT NULL,
		category TEXT,
		is_packed BOOLEAN DEFAULT 0,
		is_auto_generated BOOLEAN DEFAULT 0,
		created_at DATETIME
	);`)
}

func createReceiptsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE receipts (
		id TEXT PRIMARY KEY,
		payment_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		receipt_url TEXT NOT NULL,
		created_at DATETIME
	);`)
}
