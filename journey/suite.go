package journey

import (
	"github.com/getstarted/bookshelf-journey-tests/framework"
)

// RunTestSuite runs every scenario against config.BaseURL. Each scenario gets its own session from
// opener.
func RunTestSuite(
	config Config,
	opener Opener,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, &environment{config: config, opener: opener})

		t.Run("user journey", DoUserJourneyTest)
	})
}
