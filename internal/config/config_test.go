package config_test

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"gdpdash/internal/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func setenv(key, value string) {
	old, had := os.LookupEnv(key)
	Expect(os.Setenv(key, value)).To(Succeed())
	DeferCleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func writeYAML(body string) string {
	dir, err := os.MkdirTemp("", "gdpdash-config")
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(os.RemoveAll, dir)
	path := filepath.Join(dir, "gdpdash.yaml")
	Expect(os.WriteFile(path, []byte(body), 0o644)).To(Succeed())
	return path
}

var _ = Describe("Load", func() {
	BeforeEach(func() {
		for _, k := range []string{config.EnvInput, config.EnvSheet, config.EnvOutputDir, config.EnvVariant,
			config.EnvLogLevel, config.EnvCSVDir, config.EnvTopN} {
			setenv(k, "")
		}
	})

	It("returns the defaults without a file", func() {
		cfg, err := config.Load("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("layers the file over defaults and the environment over the file", func() {
		path := writeYAML(`
input: data/gdp.xlsx
variant: dropdown
top_regions: 5
exclude: [growth_volatility]
`)
		setenv(config.EnvInput, "env.csv")

		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Input).To(Equal("env.csv"))
		Expect(cfg.Variant).To(Equal(config.VariantDropdown))
		Expect(cfg.TopRegions).To(Equal(5))
		Expect(cfg.TopIndustries).To(Equal(3))
		Expect(cfg.Excluded("growth_volatility")).To(BeTrue())
		Expect(cfg.Excluded("growth_trends")).To(BeFalse())
	})

	It("normalises the variant from the environment", func() {
		setenv(config.EnvVariant, " Dropdown ")
		cfg, err := config.Load("")
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Variant).To(Equal(config.VariantDropdown))
	})

	It("fails on a missing file", func() {
		_, err := config.Load(filepath.Join(os.TempDir(), "no-such-gdpdash.yaml"))
		Expect(err).To(HaveOccurred())
	})

	It("fails on malformed yaml", func() {
		_, err := config.Load(writeYAML("top_regions: [oops"))
		Expect(err).To(HaveOccurred())
	})

	It("fails on a non-numeric top-N variable", func() {
		setenv(config.EnvTopN, "ten")
		_, err := config.Load("")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Validate", func() {
	DescribeTable("rejects bad settings",
		func(mutate func(*config.Config), want error) {
			cfg := config.Default()
			mutate(cfg)
			Expect(eris.Is(cfg.Validate(), want)).To(BeTrue())
		},
		Entry("unknown variant", func(c *config.Config) { c.Variant = "tabs" }, config.ErrUnknownVariant),
		Entry("empty input", func(c *config.Config) { c.Input = " " }, config.ErrMissingInput),
		Entry("zero top industries", func(c *config.Config) { c.TopIndustries = 0 }, config.ErrTopN),
		Entry("negative top regions", func(c *config.Config) { c.TopRegions = -1 }, config.ErrTopN),
		Entry("inverted growth range", func(c *config.Config) { c.GrowthFrom, c.GrowthTo = 2020, 2018 }, config.ErrGrowthRange),
	)
})
