package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kherring/matterlab/internal/config"
	"github.com/kherring/matterlab/internal/matter"
	"github.com/kherring/matterlab/internal/report"
	"github.com/kherring/matterlab/internal/store"
	"github.com/kherring/matterlab/internal/substance"
	"github.com/kherring/matterlab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	withGraph  bool
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "matterlab",
		Short: "composite material modeling lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".matterlab", "data directory")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "build an object from a scenario and store it",
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	buildCmd.Flags().StringVar(&preset, "preset", "", "use a preset scenario")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored objects",
		RunE:  runList,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [id]",
		Short: "show a stored object",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().BoolVar(&withGraph, "graph", false, "plot the layer mass profile")

	splitCmd := &cobra.Command{
		Use:   "split [id] [proportions...]",
		Short: "split a stored object by mass proportions",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSplit,
	}

	reportCmd := &cobra.Command{
		Use:   "report [id]",
		Short: "write a PDF datasheet for a stored object",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().StringVar(&outFile, "out", "datasheet.pdf", "output path")

	browseCmd := &cobra.Command{
		Use:   "browse [id]",
		Short: "browse a stored object's layer tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  runBrowse,
	}

	elementsCmd := &cobra.Command{
		Use:   "elements [symbols...]",
		Short: "show the periodic table",
		RunE:  runElements,
	}

	formulaCmd := &cobra.Command{
		Use:   "formula [formula]",
		Short: "parse a chemical formula",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormula,
	}

	rootCmd.AddCommand(buildCmd, listCmd, inspectCmd, splitCmd, reportCmd, browseCmd, elementsCmd, formulaCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openStore() (*store.Store, error) {
	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}

func loadScenario() (*config.Config, error) {
	if preset != "" {
		cfg, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		return cfg, nil
	}
	if configFile == "" {
		return nil, fmt.Errorf("either --config or --preset is required")
	}
	return config.Load(configFile)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}

	reg := substance.NewBuiltinRegistry()
	config.RegisterSubstances(cfg, reg)
	obj, err := config.Build(cfg, reg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	id, err := st.Save(cfg.Name, obj)
	if err != nil {
		return err
	}

	fmt.Printf("built %s (%.3f kg, %d layers)\n", id, obj.Mass(), obj.Len())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	all, err := st.List()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("no stored objects")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMASS\tDENSITY\tLAYERS\tCREATED")
	for _, meta := range all {
		fmt.Fprintf(w, "%s\t%s\t%.3f kg\t%.1f kg/m3\t%d\t%s\n",
			meta.ID, meta.Name, meta.Mass, meta.Density, meta.Components,
			meta.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func loadObject(id string) (matter.Node, *store.Metadata, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.LoadMetadata(id)
	if err != nil {
		return nil, nil, err
	}
	obj, err := st.Load(id, substance.NewBuiltinRegistry())
	if err != nil {
		return nil, nil, err
	}
	return obj, meta, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	obj, meta, err := loadObject(args[0])
	if err != nil {
		return err
	}
	fmt.Println(report.Render(meta.Name, obj))
	if withGraph {
		if plot := report.MassProfile(obj); plot != "" {
			fmt.Println()
			fmt.Println(plot)
		}
	}
	return nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	obj, meta, err := loadObject(args[0])
	if err != nil {
		return err
	}

	proportions := make([]float64, 0, len(args)-1)
	for _, arg := range args[1:] {
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("bad proportion %q: %w", arg, err)
		}
		proportions = append(proportions, p)
	}

	result := obj.Split(proportions...)
	if result == obj {
		return fmt.Errorf("degenerate split: nothing to do")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	id, err := st.Save(meta.Name+"-split", result)
	if err != nil {
		return err
	}
	fmt.Printf("split %s into %s (%.3f kg)\n", args[0], id, result.Mass())
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	obj, meta, err := loadObject(args[0])
	if err != nil {
		return err
	}
	if err := report.WritePDF(meta.Name, obj, outFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	obj, meta, err := loadObject(args[0])
	if err != nil {
		return err
	}
	return tui.Run(meta.Name, obj)
}

func runElements(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Z\tSYMBOL\tNAME\tMASS (g/mol)")

	if len(args) > 0 {
		for _, sym := range args {
			e, ok := substance.ElementBySymbol(sym)
			if !ok {
				return fmt.Errorf("unknown element: %s", sym)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\n", e.Number, e.Symbol, e.Name, e.AtomicMass)
		}
		return w.Flush()
	}

	for _, e := range substance.Elements() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\n", e.Number, e.Symbol, e.Name, e.AtomicMass)
	}
	return w.Flush()
}

func runFormula(cmd *cobra.Command, args []string) error {
	counts, err := substance.ParseFormula(args[0])
	if err != nil {
		return err
	}
	mass, err := substance.MolarMass(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ELEMENT\tATOMS\tMASS (g/mol)")
	for _, e := range substance.Elements() {
		n, ok := counts[e.Symbol]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\n", e.Symbol, n, e.AtomicMass*float64(n))
	}
	fmt.Fprintf(w, "total\t\t%.3f\n", mass)
	return w.Flush()
}
