// seed inserts development sample data for local testing.
// Idempotent: skips inserts if any employee already exists.
package main

import (
	"context"
	"database/sql"
	"os"

	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/audit"
	burnoutdomain "github.com/safinirasol/WellMind-IBM/internal/burnout/domain"
	burnoutrepo "github.com/safinirasol/WellMind-IBM/internal/burnout/repository"
	"github.com/safinirasol/WellMind-IBM/internal/config"
	"github.com/safinirasol/WellMind-IBM/internal/db"
	employeedomain "github.com/safinirasol/WellMind-IBM/internal/employee/domain"
	employeerepo "github.com/safinirasol/WellMind-IBM/internal/employee/repository"
	"github.com/safinirasol/WellMind-IBM/internal/logging"
	"github.com/safinirasol/WellMind-IBM/internal/scoring"
)

type sample struct {
	name, email, department string
	// answers holds (work hours, stress level) pairs, oldest first.
	answers [][2]int
}

// Facilities has no submissions so the dashboard shows a department with avg_risk 0.
var samples = []sample{
	{"Aisha Rahman", "aisha@wellmind.dev", "Engineering", [][2]int{{45, 5}, {62, 9}}},
	{"Daniel Ong", "daniel@wellmind.dev", "Engineering", [][2]int{{40, 3}}},
	{"Mei Lin", "mei@wellmind.dev", "Sales", [][2]int{{55, 7}, {50, 6}}},
	{"Ravi Kumar", "ravi@wellmind.dev", "Sales", [][2]int{{38, 2}}},
	{"Sofia Alvarez", "sofia@wellmind.dev", "Human Resources", [][2]int{{48, 8}}},
	{"Tom Becker", "tom@wellmind.dev", "Facilities", nil},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db", zap.Error(err))
	}
	defer conn.Close()

	ctx := context.Background()
	n, err := employeerepo.NewPostgresRepository(conn).Count(ctx)
	if err != nil {
		log.Fatal("seed check", zap.Error(err))
	}
	if n > 0 {
		log.Info("seed already applied, skipping", zap.Int("employees", n))
		return
	}

	var results int
	err = db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		employees := employeerepo.NewPostgresRepository(conn).WithTx(tx)
		burnout := burnoutrepo.NewPostgresRepository(conn).WithTx(tx)
		for _, s := range samples {
			emp, _, err := employees.FindOrCreate(ctx, &employeedomain.Employee{Name: s.name, Email: s.email, Department: s.department})
			if err != nil {
				return err
			}
			for _, a := range s.answers {
				score := scoring.Simple(a[0], a[1])
				res := &burnoutdomain.Result{
					EmployeeID:  emp.ID,
					RiskScore:   score,
					Label:       scoring.SimpleLabel(score),
					WorkHours:   a[0],
					StressLevel: a[1],
				}
				if err := burnout.Create(ctx, res); err != nil {
					return err
				}
				digest, err := audit.Digest(res.Record(emp.Name, emp.Department))
				if err != nil {
					return err
				}
				if _, err := burnout.AttachLedgerRef(ctx, res.ID, audit.SimulatedReference(res.ID, digest)); err != nil {
					return err
				}
				results++
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("seed", zap.Error(err))
	}
	log.Info("seed completed", zap.Int("employees", len(samples)), zap.Int("results", results))
}
