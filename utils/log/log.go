package log

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/unimarket/unimarket/utils/dotenv"
	"github.com/unimarket/unimarket/utils/flag"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// JSON in production for log collection, plain text otherwise for better
	// readability.
	if os.Getenv("UNIMARKET_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": flag.ServiceName, "is_development": os.Getenv("UNIMARKET_ENV") != dotenv.ProdEnv},
	)
}
