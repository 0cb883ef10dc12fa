package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/alphios72/NewsinsightUI/internal"
	permissionDatamodel "github.com/alphios72/NewsinsightUI/internal/core/datamodel/permission"
	userDatamodel "github.com/alphios72/NewsinsightUI/internal/core/datamodel/user"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	permissionPostgres "github.com/alphios72/NewsinsightUI/internal/permission/postgres"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// starterPermissions is the initial CONFIGURATOR access set: read-only on the
// content tables the pipeline fills. Only applied when the matrix is empty.
var starterPermissions = []string{"article_db", "rss_feed_url", "url", "logs"}

var seedClearPermissions bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the operator accounts",
	Long:  `Create (or reset the password of) the admin and configurator accounts.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGorm(sqlxDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		operators := []struct {
			Username string
			Password string
			Role     string
		}{
			{"admin", "admin_password", "ADMIN"},
			{"configurator", "configurator_password", "CONFIGURATOR"},
		}

		for _, op := range operators {
			hash, err := bcrypt.GenerateFromPassword([]byte(op.Password), cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash password for %s: %v", op.Username, err)
			}

			var existing userDatamodel.User
			err = db.Where("username = ?", op.Username).First(&existing).Error
			switch {
			case err == nil:
				existing.Password = string(hash)
				if err := db.Save(&existing).Error; err != nil {
					log.Fatalf("failed to update %s user: %v", op.Username, err)
				}
				fmt.Printf("Reset password for existing user: %s\n", op.Username)
			case errors.Is(err, gorm.ErrRecordNotFound):
				user := userDatamodel.User{
					Username: op.Username,
					Password: string(hash),
					Role:     op.Role,
				}
				if err := db.Create(&user).Error; err != nil {
					log.Fatalf("failed to insert %s user: %v", op.Username, err)
				}
				fmt.Printf("Seeded user: %s (%s)\n", op.Username, op.Role)
			default:
				log.Fatalf("failed to look up %s user: %v", op.Username, err)
			}
		}

		if seedClearPermissions {
			if err := db.Exec("DELETE FROM table_permissions").Error; err != nil {
				log.Fatalf("failed to clear permission rows: %v", err)
			}
			fmt.Println("Cleared table permission rows")
		}

		var permCount int64
		if err := db.Model(&permissionDatamodel.TablePermission{}).Count(&permCount).Error; err != nil {
			log.Fatalf("failed to count permission rows: %v", err)
		}
		if permCount == 0 {
			permRepo := permissionPostgres.NewPermissionRepository(db)
			for _, table := range starterPermissions {
				if err := permRepo.Upsert(context.Background(), internal.RoleConfigurator, table, permission.KindView, true); err != nil {
					log.Fatalf("failed to seed permission for %s: %v", table, err)
				}
			}
			fmt.Printf("Seeded %d starter permission rows\n", len(starterPermissions))
		}

		fmt.Println("Seeding complete")
	},
}
