package aggregate_test

import (
	"gdpdash/internal/aggregate"
	"gdpdash/internal/dataset"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func rec(region, industry string, year int, value float64) dataset.Record {
	return dataset.Record{Region: region, Industry: industry, LocationType: "Region", LocationName: region, StartYear: year, EndYear: year, Value: value}
}

var _ = Describe("Sum", func() {
	records := []dataset.Record{
		rec("South", "Mining", 2019, 5),
		rec("North", "Mining", 2019, 1),
		rec("North", "Farming", 2019, 2),
		rec("North", "Mining", 2018, 4),
	}

	It("sums by one dimension in key order", func() {
		Expect(aggregate.Sum(records, aggregate.ByRegion, nil)).To(Equal([]aggregate.Total{
			{Key: aggregate.Key{Group: "North"}, Value: 7},
			{Key: aggregate.Key{Group: "South"}, Value: 5},
		}))
	})

	It("sums by two dimensions", func() {
		totals := aggregate.Sum(records, aggregate.ByRegion, aggregate.ByIndustry)
		Expect(totals).To(HaveLen(3))
		Expect(totals[0]).To(Equal(aggregate.Total{Key: aggregate.Key{Group: "North", Sub: "Farming"}, Value: 2}))
		Expect(totals[1].Value).To(Equal(5.0))
	})

	It("sums by year with years ascending inside each group", func() {
		points := aggregate.SumByYear(records, aggregate.ByRegion, nil)
		Expect(points).To(Equal([]aggregate.Point{
			{Key: aggregate.Key{Group: "North"}, Year: 2018, Value: 4},
			{Key: aggregate.Key{Group: "North"}, Year: 2019, Value: 3},
			{Key: aggregate.Key{Group: "South"}, Year: 2019, Value: 5},
		}))
		Expect(aggregate.Groups(points)).To(Equal([]string{"North", "South"}))
		Expect(aggregate.OfGroup(points, "North")).To(HaveLen(2))
		Expect(aggregate.OfYear(points, 2019)).To(HaveLen(2))
	})
})

var _ = Describe("TopN and BottomN", func() {
	records := []dataset.Record{
		rec("A", "i1", 2020, 3),
		rec("A", "i2", 2020, 9),
		rec("B", "i1", 2020, 7),
		rec("A", "i3", 2020, 9),
		rec("A", "i4", 2020, 1),
		rec("B", "i2", 2020, 2),
	}

	checkGroups := func(rows []dataset.Record, n int, ordered func(a, b float64) bool) {
		byGroup := map[string][]float64{}
		for _, r := range rows {
			byGroup[r.Region] = append(byGroup[r.Region], r.Value)
		}
		for _, g := range []string{"A", "B"} {
			values := byGroup[g]
			Expect(len(values)).To(BeNumerically("<=", n))
			for i := 1; i < len(values); i++ {
				Expect(ordered(values[i-1], values[i])).To(BeTrue())
			}
		}
	}

	It("returns at most n rows per group, largest first, ties in source order", func() {
		top := aggregate.TopN(records, aggregate.ByIndustry, 1)
		Expect(top).To(HaveLen(4))

		top = aggregate.TopN(records, aggregate.ByRegion, 2)
		Expect(top).To(Equal([]dataset.Record{
			rec("A", "i2", 2020, 9),
			rec("A", "i3", 2020, 9),
			rec("B", "i1", 2020, 7),
			rec("B", "i2", 2020, 2),
		}))
		checkGroups(top, 2, func(a, b float64) bool { return a >= b })
	})

	It("returns the smallest rows for BottomN", func() {
		bottom := aggregate.BottomN(records, aggregate.ByRegion, 3)
		Expect(bottom[0]).To(Equal(rec("A", "i4", 2020, 1)))
		Expect(bottom[1]).To(Equal(rec("A", "i1", 2020, 3)))
		Expect(bottom[2]).To(Equal(rec("A", "i2", 2020, 9)))
		checkGroups(bottom, 3, func(a, b float64) bool { return a <= b })
	})

	It("returns nothing for n below one", func() {
		Expect(aggregate.TopN(records, aggregate.ByRegion, 0)).To(BeEmpty())
	})

	It("does not reorder the caller's slice", func() {
		before := append([]dataset.Record(nil), records...)
		aggregate.TopN(records, aggregate.ByRegion, 2)
		Expect(records).To(Equal(before))
	})
})
