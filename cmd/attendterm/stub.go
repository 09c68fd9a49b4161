package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"attendterm/internal/stubserver"
)

var stubOpts struct {
	addr     string
	token    string
	students int
	inactive []int
	span     string
	grace    time.Duration
}

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve a stub attendance service for bench testing",
	Long: `Serve a stub of the attendance service. Students 1..N are registered with
finger IDs equal to their number and a class runs Monday to Friday in the
given span, so every response status of the capture endpoint can be produced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		start, end, err := stubserver.ParseSpan(stubOpts.span)
		if err != nil {
			return err
		}

		srv := stubserver.New(stubserver.Config{
			CapturePath: cfg.Service.CapturePath,
			DeletePath:  cfg.Service.DeletePath,
			DeleteToken: stubOpts.token,
			Grace:       stubOpts.grace,
		}, log.With("component", "stub"))

		inactive := make(map[int]bool, len(stubOpts.inactive))
		for _, id := range stubOpts.inactive {
			inactive[id] = true
		}
		for id := 1; id <= stubOpts.students; id++ {
			srv.AddStudent(stubserver.Student{FingerID: id, Active: !inactive[id]})
		}
		for _, c := range stubserver.Weekdays(start, end) {
			srv.AddClass(c)
		}

		httpSrv := &http.Server{Addr: stubOpts.addr, Handler: srv.Router()}
		ctx, stop := signalContext()
		defer stop()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx)
		}()

		log.Info("stub attendance service listening", "addr", stubOpts.addr, "students", stubOpts.students)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)
	addStubFlags(stubCmd.Flags())
}

func addStubFlags(f *pflag.FlagSet) {
	f.StringVar(&stubOpts.addr, "addr", ":5000", "listen address")
	f.StringVar(&stubOpts.token, "token", "confirm", "delete confirmation token")
	f.IntVar(&stubOpts.students, "students", 20, "number of registered students")
	f.IntSliceVar(&stubOpts.inactive, "inactive", nil, "finger IDs of inactive accounts")
	f.StringVar(&stubOpts.span, "class", "08:00-18:00", "weekday class span HH:MM-HH:MM")
	f.DurationVar(&stubOpts.grace, "grace", 10*time.Minute, "lateness threshold after class start")
}
