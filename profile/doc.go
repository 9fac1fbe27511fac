// Package profile adds opt-in runtime profiling to the yamlconf command.
//
// It supports CPU, heap and allocs profiles through command-line flags. Use
// [Config.RegisterFlags] to add CLI flags and [Config.RegisterCompletions]
// to wire up shell completions, then wrap command execution:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler(logger)
//	err := p.Start()
//	// run the command
//	err = p.Stop()
//
// Users can then enable profiling via flags like --cpu-profile=cpu.prof.
package profile
