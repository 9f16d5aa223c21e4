package audit

import "fmt"

// Action tags recorded in the log trail.
const (
	ActionOrganisationRegistered = "organisation_registered"
	ActionUserLoggedIn           = "user_logged_in"
	ActionUserLoggedOut          = "user_logged_out"

	ActionEmployeeCreated       = "employee_created"
	ActionEmployeeUpdated       = "employee_updated"
	ActionEmployeeDeleted       = "employee_deleted"
	ActionEmployeesFetched      = "employees_fetched"
	ActionEmployeeFetchedSingle = "employee_fetched_single"

	ActionTeamCreated  = "team_created"
	ActionTeamUpdated  = "team_updated"
	ActionTeamDeleted  = "team_deleted"
	ActionTeamsFetched = "teams_fetched"

	ActionEmployeeAssigned   = "employee_assigned_to_team"
	ActionEmployeeUnassigned = "employee_unassigned_from_team"
)

type messageFunc func(userID uint, meta Meta) string

var messages = map[string]messageFunc{
	ActionOrganisationRegistered: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' registered organisation %v", u, m["orgName"])
	},
	ActionUserLoggedIn: func(u uint, _ Meta) string {
		return fmt.Sprintf("User '%d' logged in", u)
	},
	ActionUserLoggedOut: func(u uint, _ Meta) string {
		return fmt.Sprintf("User '%d' logged out", u)
	},
	ActionEmployeeCreated: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' added a new employee with ID %v", u, m["employee_id"])
	},
	ActionEmployeeUpdated: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' updated employee %v", u, m["employee_id"])
	},
	ActionEmployeeDeleted: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' deleted employee %v", u, m["employee_id"])
	},
	ActionEmployeeAssigned: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' assigned employee %v to team %v", u, m["employee_id"], m["team_id"])
	},
	ActionEmployeeUnassigned: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' removed employee %v from team %v", u, m["employee_id"], m["team_id"])
	},
	ActionTeamCreated: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' created a new team with ID %v", u, m["team_id"])
	},
	ActionTeamUpdated: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' updated team %v", u, m["team_id"])
	},
	ActionTeamDeleted: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' deleted team %v", u, m["team_id"])
	},
	ActionEmployeesFetched: func(u uint, _ Meta) string {
		return fmt.Sprintf("User '%d' fetched all employees", u)
	},
	ActionEmployeeFetchedSingle: func(u uint, m Meta) string {
		return fmt.Sprintf("User '%d' fetched employee %v", u, m["employee_id"])
	},
	ActionTeamsFetched: func(u uint, _ Meta) string {
		return fmt.Sprintf("User '%d' fetched all teams", u)
	},
}

// Message renders the human-readable line for an action. Unknown actions
// fall back to "User '<id>' <action>".
func Message(action string, userID uint, meta Meta) string {
	if render, ok := messages[action]; ok {
		return render(userID, meta)
	}
	return fmt.Sprintf("User '%d' %s", userID, action)
}
