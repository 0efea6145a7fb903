// cmd/sampledata/main.go
package main

// Generates a synthetic mall-customers CSV around the five classic segment
// archetypes. Handy for demos and for load-testing the dashboard without
// shipping real customer data around.

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

type archetype struct {
	income, spend, age       float64
	incomeSD, spendSD, ageSD float64
	femaleShare              float64
}

var archetypes = []archetype{
	{income: 25, spend: 20, age: 45, incomeSD: 5, spendSD: 8, ageSD: 12, femaleShare: 0.50},
	{income: 25, spend: 75, age: 24, incomeSD: 5, spendSD: 8, ageSD: 4, femaleShare: 0.62},
	{income: 55, spend: 50, age: 40, incomeSD: 8, spendSD: 8, ageSD: 12, femaleShare: 0.52},
	{income: 85, spend: 85, age: 32, incomeSD: 8, spendSD: 8, ageSD: 6, femaleShare: 0.50},
	{income: 85, spend: 15, age: 45, incomeSD: 8, spendSD: 8, ageSD: 10, femaleShare: 0.45},
}

var (
	genCount int
	genOut   string
	genSeed  int64
)

var rootCmd = &cobra.Command{
	Use:   "sampledata",
	Short: "Generate a synthetic customer CSV around the five classic mall segments",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Create(genOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", genOut, err)
		}
		defer f.Close()

		if err := generate(f, genCount, genSeed); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %d customers to %s\n", genCount, genOut)
		return nil
	},
}

// generate writes a header plus n rows drawn round-robin from the archetypes,
// so every segment is represented.
func generate(w io.Writer, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"CustomerID", "Gender", "Age", "Annual Income (k$)", "Spending Score (1-100)"}); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		a := archetypes[i%len(archetypes)]

		gender := "Male"
		if rng.Float64() < a.femaleShare {
			gender = "Female"
		}
		age := clamp(a.age+rng.NormFloat64()*a.ageSD, 18, 70)
		income := clamp(a.income+rng.NormFloat64()*a.incomeSD, 10, 140)
		spend := clamp(a.spend+rng.NormFloat64()*a.spendSD, 1, 100)

		record := []string{
			strconv.Itoa(i + 1),
			gender,
			strconv.Itoa(int(math.Round(age))),
			strconv.Itoa(int(math.Round(income))),
			strconv.Itoa(int(math.Round(spend))),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func init() {
	rootCmd.Flags().IntVarP(&genCount, "count", "n", 200, "number of customers to generate")
	rootCmd.Flags().StringVarP(&genOut, "output", "o", "customers.csv", "output CSV path")
	rootCmd.Flags().Int64Var(&genSeed, "seed", 1, "random seed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}
