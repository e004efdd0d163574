package testutil

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/udisondev/armcalc/internal/data"
	"github.com/udisondev/armcalc/internal/model"
)

// Weapon builds with known results on the fixture tables.
var Fixtures = struct {
	Standard model.Attributes // 23/23/11/10/10

	DaggerAttack     int // Standard Dagger +0, 10 in every attribute
	CommanderAttack  int // Standard Commander's Standard +7, 33/21/34/54/23
	CrystalAttack    int // Standard Crystal Sword +0, Standard attributes
	BroadswordAttack int // Lightning Broadsword +14, Standard attributes
	HarpoonAttack    int // Poison Clayman's Harpoon +14, Standard attributes
	HarpoonPoison    int
}{
	Standard: model.NewAttributes(23, 23, 11, 10, 10),

	DaggerAttack:     82,
	CommanderAttack:  424,
	CrystalAttack:    166,
	BroadswordAttack: 365,
	HarpoonAttack:    249,
	HarpoonPoison:    83,
}

// TestdataDir returns the absolute path of the fixture tables.
func TestdataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "data", "testdata")
}

// Tables loads a private copy of the fixture tables the caller may modify.
func Tables(tb testing.TB) *data.Tables {
	tb.Helper()
	tables, err := data.LoadFiles(data.FilesIn(TestdataDir()))
	if err != nil {
		tb.Fatalf("loading fixture tables: %v", err)
	}
	return tables
}
