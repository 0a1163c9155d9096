// Command tocserve runs the toc loader behind an HTTP endpoint and a
// JSON-RPC service, periodically evicting its memo cache so edited content
// is picked up without a restart.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/doctoolkit/tocloader/internal/diagnostic"
	"github.com/doctoolkit/tocloader/internal/httpapi"
	"github.com/doctoolkit/tocloader/internal/parse"
	"github.com/doctoolkit/tocloader/internal/rpcapi"
	"github.com/doctoolkit/tocloader/internal/scheduler"
	"github.com/doctoolkit/tocloader/internal/store"
	"github.com/doctoolkit/tocloader/internal/toc"
)

var log = commonlog.GetLogger("tocloader.tocserve")

func main() {
	commonlog.Configure(1, nil)

	cmd := &cobra.Command{
		Use:   "tocserve",
		Short: "Serve resolved TOC trees over HTTP and JSON-RPC",
		RunE:  run,
	}
	cmd.Flags().String("root", ".", "documentation repository root")
	cmd.Flags().String("db", "tocloader.db", "path to the SQLite document store")
	cmd.Flags().String("http-addr", ":8080", "HTTP listen address")
	cmd.Flags().String("rpc-addr", ":1234", "JSON-RPC listen address")
	cmd.Flags().Duration("evict-interval", 30*time.Second, "memo cache eviction interval")
	viper.BindPFlags(cmd.Flags())

	viper.SetConfigName("tocloader")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warningf("read config: %s", err)
		}
	}

	if err := cmd.Execute(); err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	s, err := store.Open(viper.GetString("db"))
	if err != nil {
		return err
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

	sched := scheduler.NewScheduler(4)
	sched.RunScheduler()
	go sched.SchedulePeriodicTask(viper.GetDuration("evict-interval"), scheduler.Task{
		Name: "evict-stale-memo-entries",
		Execute: func() error {
			for _, key := range loader.CachedKeys() {
				loader.Evict(toc.NewFilePath(key))
			}
			return nil
		},
	})
	defer sched.StopScheduler()

	go func() {
		addr := viper.GetString("rpc-addr")
		if err := rpcapi.Serve(addr, loader); err != nil {
			log.Errorf("rpc server stopped: %s", err)
		}
	}()

	httpServer := httpapi.NewServer(loader)
	addr := viper.GetString("http-addr")
	log.Infof("HTTP server listening on %s", addr)
	return http.ListenAndServe(addr, httpServer.Router())
}

// loadJoins reads the "joins" config key (array-shaped, so it only ever
// comes from tocloader.yml) into the loader's join configuration.
func loadJoins() []toc.JoinEntry {
	var entries []toc.JoinEntry
	if err := viper.UnmarshalKey("joins", &entries); err != nil {
		log.Warningf("invalid joins configuration: %s", err)
		return nil
	}
	return entries
}
