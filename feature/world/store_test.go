package world

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return NewStore(gormDB, zap.NewNop()), mock
}

func recordColumns() []string {
	return []string{"id", "kind", "subtype", "name", "folder", "description",
		"images", "metadata", "sheet_type", "remote_id", "remote_campaign_id",
		"relationship_outbound", "relationship_refs", "parent_location_id",
		"local_cross_refs", "fingerprint"}
}

func TestListByKind(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows(recordColumns()).
		AddRow("l1", KindCharacter, "player", "Mira", "Party", "<p>desc</p>",
			`["https://cdn.example.com/mira.png"]`, "", "", "", "", "", "", "", "", "").
		AddRow("l2", KindCharacter, "npc", "Old Tom", "", "",
			"", "", "", "", "", "", "", "", "", "")

	mock.ExpectQuery("SELECT \\* FROM `world_records` WHERE kind = \\?").WillReturnRows(rows)

	records, err := store.ListCharacters(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Mira", records[0].Name)
	assert.Equal(t, []string{"https://cdn.example.com/mira.png"}, records[0].ImageList())
}

func TestGet_NotFound(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `world_records` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(recordColumns()))

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSetCrossReference(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `world_records` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.SetCrossReference(context.Background(), "l1", "r1", "camp-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCrossReference_MissingRecord(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `world_records` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.SetCrossReference(context.Background(), "ghost", "r1", "camp-1")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestResetSyncMetadata(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `world_records` SET").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	assert.NoError(t, store.ResetSyncMetadata(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Validation(t *testing.T) {
	store, _ := setupMockStore(t)

	_, err := store.Create(context.Background(), CreateRecord{Kind: KindItem})
	assert.Error(t, err)

	_, err = store.Create(context.Background(), CreateRecord{Name: "No Kind"})
	assert.Error(t, err)
}
