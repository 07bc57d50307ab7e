package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/ryan-gillies/commish/containers"
	"github.com/ryan-gillies/commish/db"
	"github.com/ryan-gillies/commish/model"
)

var (
	PatrickMahomes = model.Player{
		ID:        "4046",
		FirstName: "Patrick",
		LastName:  "Mahomes",
		Position:  model.POS_QB,
		Team:      "KC",
	}
	JustinJefferson = model.Player{
		ID:        "6794",
		FirstName: "Justin",
		LastName:  "Jefferson",
		Position:  model.POS_WR,
		Team:      "MIN",
	}
	BreeceHall = model.Player{
		ID:        "8155",
		FirstName: "Breece",
		LastName:  "Hall",
		Position:  model.POS_RB,
		Team:      "NYJ",
	}
	JalenHurts = model.Player{
		ID:        "6904",
		FirstName: "Jalen",
		LastName:  "Hurts",
		Position:  model.POS_QB,
		Team:      "PHI",
	}
	TylerLockett = model.Player{
		ID:        "2374",
		FirstName: "Tyler",
		LastName:  "Lockett",
		Position:  model.POS_WR,
		Team:      "SEA",
	}
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer(containers.SchemaPath)
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	if err := InsertTestPlayers(db); err != nil {
		log.Fatalf("error populating db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// InsertTestPlayers saves some of the players that start in the fake sleeper
// matchups. The rest are left out so that lookups of unknown players are
// exercised too.
func InsertTestPlayers(db db.DB) error {
	players := []model.Player{
		PatrickMahomes,
		JustinJefferson,
		BreeceHall,
		JalenHurts,
		TylerLockett,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return db.SavePlayers(ctx, players)
}
