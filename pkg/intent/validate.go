package intent

import (
	"fmt"

	"github.com/Maverick7728/Proactive-Work-Life-Assistant/pkg/store"
)

// ValidateGoal splits problems into blocking errors and advisory
// warnings. A warning never stops the task; an error means the goal
// cannot proceed as extracted.
func ValidateGoal(goal *store.Goal) (errs []string, warnings []string) {
	switch goal.Intent {
	case store.IntentMeeting:
		if goal.Date == "" {
			errs = append(errs, "date is required for scheduling a meeting")
		}
		if len(goal.People) == 0 && !goal.AskPeople {
			warnings = append(warnings, "no attendees recognized; only your own calendar will be considered")
		}
		if goal.Time == "" {
			warnings = append(warnings, "no preferred time given; available slots will be offered")
		}
	case store.IntentDinner:
		if goal.Location == "" {
			errs = append(errs, "location is required for a restaurant search")
		}
	case store.IntentAvailability:
		if goal.Date == "" {
			errs = append(errs, "date is required for an availability check")
		}
		if len(goal.People) == 0 {
			errs = append(errs, "at least one person is required for an availability check")
		}
	case store.IntentEmail:
		if len(goal.Recipients) == 0 {
			errs = append(errs, "recipient is required for sending an email")
		}
		if goal.Message == "" {
			errs = append(errs, "message body is required for sending an email")
		}
	case store.IntentUnknown:
		errs = append(errs, fmt.Sprintf("could not understand the request %q", goal.RawQuery))
	}
	return errs, warnings
}
