package aggregate_test

import (
	"math"

	"gdpdash/internal/aggregate"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	It("renders absent matrix cells as empty text", func() {
		m := aggregate.Matrix{
			Rows:  []string{"A"},
			Cols:  []string{"2018-2019", "2019-2020"},
			Cells: [][]float64{{12.5, math.NaN()}},
		}
		Expect(aggregate.MatrixTable(m, "Region").Strings()).To(Equal([][]string{
			{"Region", "2018-2019", "2019-2020"},
			{"A", "12.5", ""},
		}))
	})

	It("adds the sub column only for two-level keys", func() {
		totals := []aggregate.Total{{Key: aggregate.Key{Group: "A", Sub: "x"}, Value: 1}}
		Expect(aggregate.TotalsTable(totals, "Region", "", "Value").Columns).To(Equal([]string{"Region", "Value"}))

		t := aggregate.TotalsTable(totals, "Region", "Industry", "Value")
		Expect(t.Columns).To(Equal([]string{"Region", "Industry", "Value"}))
		Expect(t.Rows).To(Equal([][]any{{"A", "x", 1.0}}))
	})

	It("lists growth with both comparison years", func() {
		changes := []aggregate.Change{{Key: aggregate.Key{Group: "A"}, PrevYear: 2018, Year: 2020, Value: 6, Rate: 20}}
		t := aggregate.ChangesTable(changes, "Region", "")
		Expect(t.Strings()[1]).To(Equal([]string{"A", "2018", "2020", "6", "20"}))
	})
})
