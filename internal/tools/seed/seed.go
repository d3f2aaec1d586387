// Package seed populates a local portal database with demo client data.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	clients "github.com/kingstons-portal/backoffice/internal/clients/domain"
	portaldomain "github.com/kingstons-portal/backoffice/internal/services/portal/domain"
	"github.com/kingstons-portal/backoffice/internal/services/portal/storage/sqlite"
)

// Config holds seeding configuration.
type Config struct {
	DBPath  string
	Owners  int
	Seed    int64
	Verbose bool
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{DBPath: "portal.db", Owners: 10}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the portal database")
	fs.IntVar(&cfg.Owners, "owners", cfg.Owners, "number of product owners to create")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	firstNames = []string{"Margaret", "Geoffrey", "Eleanor", "Harold", "Beatrice", "Clive", "Dorothy", "Trevor", "Iris", "Stanley"}
	surnames   = []string{"Whitfield", "Pemberton", "Ashcroft", "Merriweather", "Holloway", "Braithwaite", "Caldwell", "Fairbanks"}
	relations  = []string{"spouse", "child", "sibling", "attorney", "accountant"}
	documents  = []string{"will", "lasting power of attorney", "trust deed", "letter of wishes"}
	conditions = []string{"mobility impairment", "hearing loss", "memory concerns", "chronic illness"}
)

// Run seeds demo client data into the configured database.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("database path is required")
	}
	if cfg.Owners <= 0 {
		return errors.New("owners must be greater than zero")
	}
	if out == nil {
		out = io.Discard
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open portal store: %w", err)
	}
	defer store.Close()

	svc := portaldomain.NewService(store, nil, nil)
	seedValue := cfg.Seed
	if seedValue == 0 {
		seedValue = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seedValue))

	for i := 0; i < cfg.Owners; i++ {
		firstname := firstNames[rng.Intn(len(firstNames))]
		surname := surnames[rng.Intn(len(surnames))]
		owner, err := svc.CreateProductOwner(ctx, clients.CreateProductOwnerInput{
			KnownAs:   firstname,
			Title:     pickTitle(rng),
			Firstname: firstname,
			Surname:   surname,
		})
		if err != nil {
			return fmt.Errorf("create owner %d: %w", i, err)
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "created owner %s (%s %s)\n", owner.ID, firstname, surname)
		}

		if _, err := svc.CreateSpecialRelationship(ctx, clients.CreateSpecialRelationshipInput{
			OwnerID:  owner.ID,
			Name:     firstNames[rng.Intn(len(firstNames))] + " " + surname,
			Relation: relations[rng.Intn(len(relations))],
		}); err != nil {
			return fmt.Errorf("create relationship for %s: %w", owner.ID, err)
		}
		if _, err := svc.CreateLegalDocument(ctx, clients.CreateLegalDocumentInput{
			OwnerID: owner.ID,
			Kind:    documents[rng.Intn(len(documents))],
		}); err != nil {
			return fmt.Errorf("create document for %s: %w", owner.ID, err)
		}
		if rng.Intn(3) == 0 {
			if _, err := svc.CreateHealthRecord(ctx, clients.CreateHealthRecordInput{
				OwnerID:       owner.ID,
				Title:         conditions[rng.Intn(len(conditions))],
				Vulnerability: "monitor",
			}); err != nil {
				return fmt.Errorf("create health record for %s: %w", owner.ID, err)
			}
		}
		if rng.Intn(4) == 0 {
			if _, err := svc.SetProductOwnerStatus(ctx, owner.ID, string(clients.OwnerStatusLapsed)); err != nil {
				return fmt.Errorf("lapse owner %s: %w", owner.ID, err)
			}
		}
	}

	fmt.Fprintf(out, "seeded %d product owners into %s\n", cfg.Owners, cfg.DBPath)
	return nil
}

func pickTitle(rng *rand.Rand) string {
	titles := []string{"Mr", "Mrs", "Ms", "Dr", ""}
	return titles[rng.Intn(len(titles))]
}
