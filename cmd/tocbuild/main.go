// Command tocbuild resolves a table-of-contents file on disk and either
// prints it as JSON or renders it as an ASCII tree.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/doctoolkit/tocloader/internal/diagnostic"
	"github.com/doctoolkit/tocloader/internal/parse"
	"github.com/doctoolkit/tocloader/internal/store"
	"github.com/doctoolkit/tocloader/internal/toc"
)

var log = commonlog.GetLogger("tocloader.tocbuild")

func main() {
	commonlog.Configure(1, nil)

	root := &cobra.Command{
		Use:   "tocbuild",
		Short: "Resolve a TOC file into its fully materialized tree",
	}
	root.PersistentFlags().String("root", ".", "documentation repository root")
	root.PersistentFlags().String("db", "tocloader.db", "path to the SQLite document store")
	viper.BindPFlag("root", root.PersistentFlags().Lookup("root"))
	viper.BindPFlag("db", root.PersistentFlags().Lookup("db"))

	viper.SetConfigName("tocloader")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "read config:", err)
		}
	}

	root.AddCommand(buildCmd(), treeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadFile(file string) (*toc.LoadResult, error) {
	s, err := store.Open(viper.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	resolver := &store.FileResolver{Root: viper.GetString("root"), Store: s}
	sink := diagnostic.New()

	loader := toc.NewTocLoader(toc.System{
		Parser:    &parse.FileParser{Root: viper.GetString("root")},
		Links:     resolver,
		Xrefs:     resolver,
		Monikers:  s,
		Deps:      s,
		Documents: s,
		Sink:      sink,
		Joins:     loadJoins(),
	})

	result, err := loader.Load(context.Background(), toc.NewFilePath(file))
	for _, d := range sink.Diagnostics() {
		log.Warningf("%s", d.Error())
	}
	return result, err
}

// loadJoins reads the "joins" config key (flags don't cover this; it's
// array-shaped, so it only ever comes from tocloader.yml) into the loader's
// join configuration.
func loadJoins() []toc.JoinEntry {
	var entries []toc.JoinEntry
	if err := viper.UnmarshalKey("joins", &entries); err != nil {
		log.Warningf("invalid joins configuration: %s", err)
		return nil
	}
	return entries
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [file]",
		Short: "Resolve a TOC file and print its tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loadFile(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result.Node)
		},
	}
}

func treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [file]",
		Short: "Resolve a TOC file and print it as an ASCII tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loadFile(args[0])
			if err != nil {
				return err
			}
			printed := renderTree(args[0], result.Node)
			fmt.Println(printed.Print())
			return nil
		},
	}
}

func renderTree(label string, node *toc.TocNode) gotree.Tree {
	tree := gotree.New(nodeLabel(label, node))
	for _, child := range node.Items {
		appendTree(tree, child)
	}
	return tree
}

func appendTree(parent gotree.Tree, node *toc.TocNode) {
	child := parent.Add(nodeLabel(node.Name, node))
	for _, grandchild := range node.Items {
		appendTree(child, grandchild)
	}
}

func nodeLabel(name string, node *toc.TocNode) string {
	if node.Href == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, node.Href)
}
