package dataset_test

import (
	"os"
	"path/filepath"

	"gdpdash/internal/dataset"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

var header = []interface{}{"Region", "Industry", "Location_Type", "Location_Name", "Start_Year", "End_Year", "Value"}

func writeWorkbook(dir string, rows ...[]interface{}) string {
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		r := row
		Expect(f.SetSheetRow("Sheet1", cell, &r)).To(Succeed())
	}
	path := filepath.Join(dir, "input.xlsx")
	Expect(f.SaveAs(path)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "dataset")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
	})

	Context("with an xlsx workbook", func() {
		It("keeps usable rows and drops rows with unusable Value or Start_Year", func() {
			path := writeWorkbook(dir,
				header,
				[]interface{}{"North", "Agriculture", "Province", "Alpha", 2018, 2018, 10.5},
				[]interface{}{"North", "Mining", "Province", "Alpha", 2019, 2019, "n/a"},
				[]interface{}{"South", "Mining", "Region", "South", "unknown", 2019, 4},
				[]interface{}{"South", "Services", "City", "Beta", 2019, "", "1,250"},
			)

			table, stats, err := dataset.Load(path, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(stats).To(Equal(dataset.LoadStats{Read: 4, Kept: 2, Dropped: 2}))
			Expect(table.Records).To(Equal([]dataset.Record{
				{Region: "North", Industry: "Agriculture", LocationType: "Province", LocationName: "Alpha", StartYear: 2018, EndYear: 2018, Value: 10.5},
				{Region: "South", Industry: "Services", LocationType: "City", LocationName: "Beta", StartYear: 2019, EndYear: 0, Value: 1250},
			}))
		})

		It("fails with a data-format error when columns are missing", func() {
			path := writeWorkbook(dir,
				[]interface{}{"Region", "Industry", "Value"},
				[]interface{}{"North", "Agriculture", 1},
			)

			_, _, err := dataset.Load(path, "")
			Expect(err).To(HaveOccurred())
			Expect(eris.Is(err, dataset.ErrMissingColumns)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Start_Year"))
		})

		It("fails with an I/O error for an unknown sheet", func() {
			path := writeWorkbook(dir, header)

			_, _, err := dataset.Load(path, "Nope")
			Expect(eris.Is(err, dataset.ErrUnreadable)).To(BeTrue())
		})
	})

	Context("with a csv file", func() {
		It("applies the same cleaning rules", func() {
			path := filepath.Join(dir, "input.csv")
			data := "Region,Industry,Location_Type,Location_Name,Start_Year,End_Year,Value\n" +
				"North,Agriculture,Province,Alpha,2018,2018,10\n" +
				"North,Agriculture,Province,Alpha,2019.5,2019,15\n" +
				"North,Agriculture,Province,Alpha,2020,2020,20\n"
			Expect(os.WriteFile(path, []byte(data), 0o644)).To(Succeed())

			table, stats, err := dataset.Load(path, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Dropped).To(Equal(1))
			Expect(table.Years()).To(Equal([]int{2018, 2020}))
		})
	})

	It("fails with an I/O error when the file does not exist", func() {
		_, _, err := dataset.Load(filepath.Join(dir, "missing.xlsx"), "")
		Expect(eris.Is(err, dataset.ErrUnreadable)).To(BeTrue())
	})
})

var _ = Describe("FromRows", func() {
	It("rejects an empty grid", func() {
		_, _, err := dataset.FromRows(nil)
		Expect(eris.Is(err, dataset.ErrMissingColumns)).To(BeTrue())
	})

	It("treats NaN and infinite cells as unusable", func() {
		rows := [][]string{
			{"Region", "Industry", "Location_Type", "Location_Name", "Start_Year", "End_Year", "Value"},
			{"North", "A", "Province", "Alpha", "2018", "2018", "NaN"},
			{"North", "A", "Province", "Alpha", "2018", "2018", "+Inf"},
			{"North", "A", "Province", "Alpha", "2018", "2018", "3"},
		}
		table, stats, err := dataset.FromRows(rows)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Kept).To(Equal(1))
		Expect(table.Records[0].Value).To(Equal(3.0))
	})

	It("tolerates ragged rows and header padding", func() {
		rows := [][]string{
			{" Region ", "Industry", "Location_Type", "Location_Name", "Start_Year", "Value", "End_Year"},
			{"North", "A", "Province", "Alpha", "2018", "7"},
		}
		table, _, err := dataset.FromRows(rows)
		Expect(err).NotTo(HaveOccurred())
		Expect(table.Records).To(HaveLen(1))
		Expect(table.Records[0].EndYear).To(BeZero())
	})
})

var _ = Describe("Table", func() {
	table := dataset.NewTable([]dataset.Record{
		{Region: "South", Industry: "B", LocationType: "Province", StartYear: 2019, Value: 1},
		{Region: "North", Industry: "A", LocationType: "Region", StartYear: 2018, Value: 2},
		{Region: "North", Industry: "B", LocationType: "city", StartYear: 2020, Value: 3},
	})

	It("reports years and bounds", func() {
		Expect(table.Years()).To(Equal([]int{2018, 2019, 2020}))
		Expect(table.FirstYear()).To(Equal(2018))
		Expect(table.LatestYear()).To(Equal(2020))
		Expect(dataset.NewTable(nil).LatestYear()).To(BeZero())
	})

	It("filters by year and location level", func() {
		Expect(table.InYear(2019).Len()).To(Equal(1))
		Expect(table.ProvinceLevel().Len()).To(Equal(2))
	})

	It("lists sorted distinct keys", func() {
		Expect(table.Regions()).To(Equal([]string{"North", "South"}))
		Expect(table.Industries()).To(Equal([]string{"A", "B"}))
	})
})
