package records_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	"github.com/alphios72/NewsinsightUI/internal/records"
	"github.com/alphios72/NewsinsightUI/internal/schema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRecords(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Records Suite")
}

// MockIntrospector implements records.Introspector for testing
type MockIntrospector struct {
	tables     map[string][]schema.Column
	shouldFail bool
	failError  error
}

func NewMockIntrospector() *MockIntrospector {
	return &MockIntrospector{tables: make(map[string][]schema.Column)}
}

func (m *MockIntrospector) AddTable(name string, columns ...string) {
	cols := make([]schema.Column, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, schema.Column{Name: c, DataType: "text", Nullable: true})
	}
	m.tables[name] = cols
}

func (m *MockIntrospector) ListTables(ctx context.Context) ([]string, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var names []string
	for name := range m.tables {
		names = append(names, name)
	}
	return names, nil
}

func (m *MockIntrospector) HasTable(ctx context.Context, tableName string) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	_, ok := m.tables[tableName]
	return ok, nil
}

func (m *MockIntrospector) ListColumns(ctx context.Context, tableName string) ([]schema.Column, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	cols, ok := m.tables[tableName]
	if !ok {
		return nil, internal.ErrUnknownTable
	}
	return cols, nil
}

// MockResolver implements records.AccessResolver for testing
type MockResolver struct {
	access map[string]permission.Access
}

func NewMockResolver() *MockResolver {
	return &MockResolver{access: make(map[string]permission.Access)}
}

func (m *MockResolver) Grant(role internal.Role, tableName string, canView, canEdit bool) {
	m.access[string(role)+"/"+tableName] = permission.Access{CanView: canView, CanEdit: canEdit}
}

func (m *MockResolver) ResolveAccess(ctx context.Context, role internal.Role, tableName string) (permission.Access, error) {
	if role == internal.RoleAdmin {
		return permission.Access{CanView: true, CanEdit: true}, nil
	}
	return m.access[string(role)+"/"+tableName], nil
}

// MockRepository records every dynamic SQL call the service issues
type MockRepository struct {
	rows       []records.Row
	selects    int
	inserts    int
	updates    int
	deletes    int
	lastFields []records.Field
	lastLimit  int
	lastOrder  bool
	shouldFail bool
	failError  error
}

func (m *MockRepository) SelectRows(ctx context.Context, tableName string, limit int, orderByID bool) ([]records.Row, error) {
	m.selects++
	m.lastLimit = limit
	m.lastOrder = orderByID
	if m.shouldFail {
		return nil, m.failError
	}
	return m.rows, nil
}

func (m *MockRepository) InsertRow(ctx context.Context, tableName string, fields []records.Field) (int64, error) {
	m.inserts++
	m.lastFields = fields
	if m.shouldFail {
		return 0, m.failError
	}
	return 1, nil
}

func (m *MockRepository) UpdateRowByID(ctx context.Context, tableName string, id int64, fields []records.Field) (int64, error) {
	m.updates++
	m.lastFields = fields
	if m.shouldFail {
		return 0, m.failError
	}
	return 1, nil
}

func (m *MockRepository) DeleteRowByID(ctx context.Context, tableName string, id int64) (int64, error) {
	m.deletes++
	if m.shouldFail {
		return 0, m.failError
	}
	return 1, nil
}

var _ = Describe("Record Service", func() {
	var (
		introspector *MockIntrospector
		resolver     *MockResolver
		repo         *MockRepository
		service      *records.Service
		ctx          context.Context
	)

	BeforeEach(func() {
		introspector = NewMockIntrospector()
		resolver = NewMockResolver()
		repo = &MockRepository{}
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = records.NewService(introspector, resolver, repo, log)
		ctx = context.Background()

		introspector.AddTable("article_db", "id", "title", "summary")
		introspector.AddTable("keyless", "title", "summary")
	})

	Describe("List", func() {
		Context("when the table does not exist", func() {
			It("should return unknown table without touching the repository", func() {
				_, _, err := service.List(ctx, internal.RoleAdmin, "nope", 0)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownTable))
				Expect(repo.selects).To(Equal(0))
			})
		})

		Context("when the role may not view the table", func() {
			It("should return permission denied without touching the repository", func() {
				_, _, err := service.List(ctx, internal.RoleConfigurator, "article_db", 0)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodePermissionDenied))
				Expect(repo.selects).To(Equal(0))
			})
		})

		Context("when access is granted", func() {
			BeforeEach(func() {
				repo.rows = []records.Row{{"id": int64(1), "title": "a"}}
				resolver.Grant(internal.RoleConfigurator, "article_db", true, false)
			})

			It("should return rows and the introspected columns", func() {
				rows, columns, err := service.List(ctx, internal.RoleConfigurator, "article_db", 0)
				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(HaveLen(1))
				Expect(columns).To(HaveLen(3))
				Expect(columns[0].Name).To(Equal("id"))
			})

			It("should clamp the limit to the default bound", func() {
				_, _, err := service.List(ctx, internal.RoleConfigurator, "article_db", 999999)
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.lastLimit).To(Equal(records.DefaultListLimit))
			})

			It("should order by id only when the table has an id column", func() {
				_, _, err := service.List(ctx, internal.RoleConfigurator, "article_db", 10)
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.lastOrder).To(BeTrue())

				resolver.Grant(internal.RoleConfigurator, "keyless", true, false)
				_, _, err = service.List(ctx, internal.RoleConfigurator, "keyless", 10)
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.lastOrder).To(BeFalse())
			})
		})
	})

	Describe("Create", func() {
		Context("with an empty field mapping", func() {
			It("should return empty payload and issue no SQL", func() {
				_, err := service.Create(ctx, internal.RoleAdmin, "article_db", map[string]interface{}{})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeEmptyPayload))
				Expect(repo.inserts).To(Equal(0))
			})
		})

		Context("with a column the table does not have", func() {
			It("should reject the payload before inserting", func() {
				_, err := service.Create(ctx, internal.RoleAdmin, "article_db", map[string]interface{}{
					"bogus": "x",
				})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
				Expect(repo.inserts).To(Equal(0))
			})
		})

		Context("when the role has view but not edit", func() {
			BeforeEach(func() {
				resolver.Grant(internal.RoleConfigurator, "article_db", true, false)
			})

			It("should return permission denied", func() {
				_, err := service.Create(ctx, internal.RoleConfigurator, "article_db", map[string]interface{}{
					"title": "t",
				})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodePermissionDenied))
				Expect(repo.inserts).To(Equal(0))
			})
		})

		Context("with a valid payload", func() {
			It("should insert with deterministically ordered fields", func() {
				result, err := service.Create(ctx, internal.RoleAdmin, "article_db", map[string]interface{}{
					"title":   "t",
					"summary": "s",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Success).To(BeTrue())
				Expect(result.RowsAffected).To(Equal(int64(1)))
				Expect(repo.lastFields).To(HaveLen(2))
				Expect(repo.lastFields[0].Column).To(Equal("summary"))
				Expect(repo.lastFields[1].Column).To(Equal("title"))
			})
		})
	})

	Describe("Update", func() {
		Context("with an empty payload after the id is stripped", func() {
			It("should be a successful no-op issuing no SQL", func() {
				result, err := service.Update(ctx, internal.RoleAdmin, "article_db", 7, map[string]interface{}{
					"id": int64(99),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Success).To(BeTrue())
				Expect(result.RowsAffected).To(Equal(int64(0)))
				Expect(repo.updates).To(Equal(0))
			})
		})

		Context("with a payload carrying an id field", func() {
			It("should strip the id so the primary key is never rewritten", func() {
				_, err := service.Update(ctx, internal.RoleAdmin, "article_db", 7, map[string]interface{}{
					"id":    int64(99),
					"title": "changed",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(repo.lastFields).To(HaveLen(1))
				Expect(repo.lastFields[0].Column).To(Equal("title"))
			})
		})

		Context("when the repository fails", func() {
			BeforeEach(func() {
				repo.shouldFail = true
				repo.failError = errors.New("connection reset")
			})

			It("should surface the repository error", func() {
				_, err := service.Update(ctx, internal.RoleAdmin, "article_db", 7, map[string]interface{}{
					"title": "changed",
				})
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("connection reset"))
			})
		})
	})

	Describe("Delete", func() {
		Context("when the role may edit", func() {
			BeforeEach(func() {
				resolver.Grant(internal.RoleConfigurator, "article_db", true, true)
			})

			It("should delete and report rows affected", func() {
				result, err := service.Delete(ctx, internal.RoleConfigurator, "article_db", 3)
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Success).To(BeTrue())
				Expect(result.RowsAffected).To(Equal(int64(1)))
				Expect(repo.deletes).To(Equal(1))
			})
		})

		Context("when the table does not exist", func() {
			It("should return unknown table without touching the repository", func() {
				_, err := service.Delete(ctx, internal.RoleAdmin, "nope", 3)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeUnknownTable))
				Expect(repo.deletes).To(Equal(0))
			})
		})
	})
})
