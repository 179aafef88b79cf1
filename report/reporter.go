package report

// Reporter is responsible for reporting compile errors and other messages to
// the user.  Each compile invocation owns its own reporter so that multiple
// compiles (eg. in a test harness) never interfere through shared state.
type Reporter struct {
	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// Indicates whether or not an error has been detected.
	isErr bool
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelVerbose        // Displays all compilation messages (default).
)

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{logLevel: logLevel}
}

// ReportCompileError reports a compilation error: ie. erroneous input code.
// The path is the path to the erroneous source file as given by the user.
func (r *Reporter) ReportCompileError(path string, cerr *CompileError) {
	r.isErr = true

	if r.logLevel > LogLevelSilent {
		displayCompileError(path, cerr)
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func (r *Reporter) ReportStdError(path string, err error) {
	r.isErr = true

	if r.logLevel > LogLevelSilent {
		displayStdError(path, err)
	}
}

// ReportInfo reports an informational message.
func (r *Reporter) ReportInfo(tag, msg string) {
	if r.logLevel > LogLevelError {
		displayInfo(tag, msg)
	}
}

// AnyErrors returns whether or not any errors were detected.
func (r *Reporter) AnyErrors() bool {
	return r.isErr
}

// -----------------------------------------------------------------------------

// Catch catches any compile errors thrown by a `panic` during a stage of
// compilation.  In effect, this handler determines where errors within a
// given stage of the compiler stop bubbling.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) Catch(path string) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*CompileError); ok {
			r.ReportCompileError(path, cerr)
		} else if serr, ok := x.(error); ok {
			r.ReportStdError(path, serr)
		} else {
			ReportFatal("%s", x)
		}
	}
}
