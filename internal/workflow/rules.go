package workflow

import "github.com/spec-kit/claims-service/internal/domain"

// ActionDescriptor describes one transition an actor may currently request.
// RequiresAdjuster and RequiresAmount tell the caller which supplemental
// fields must accompany the request.
type ActionDescriptor struct {
	Target           domain.ClaimStatus `json:"target"`
	Label            string             `json:"label"`
	RequiresAdjuster bool               `json:"requires_adjuster"`
	RequiresAmount   bool               `json:"requires_amount"`
}

// rule is one row of the transition policy: a (role, from) pair permitting a
// single target, with its data requirements. ownerOnly rows apply only when
// the actor is the claim's assigned adjuster.
type rule struct {
	role             domain.Role
	from             domain.ClaimStatus
	target           domain.ClaimStatus
	requiresAdjuster bool
	requiresAmount   bool
	ownerOnly        bool
}

// ruleTable holds the full transition policy for the non-admin roles.
// Declaration order is the order actions are presented in; customers have no
// rows and can never transition a claim. Admin rows are synthesized in
// rulesFor so the bypass stays a table property rather than an engine branch.
var ruleTable = []rule{
	{role: domain.RoleAgent, from: domain.ClaimStatusSubmitted, target: domain.ClaimStatusUnderReview},
	{role: domain.RoleAgent, from: domain.ClaimStatusSubmitted, target: domain.ClaimStatusRejected},
	{role: domain.RoleAgent, from: domain.ClaimStatusUnderReview, target: domain.ClaimStatusRejected},

	{role: domain.RoleManager, from: domain.ClaimStatusSubmitted, target: domain.ClaimStatusUnderReview},
	{role: domain.RoleManager, from: domain.ClaimStatusUnderReview, target: domain.ClaimStatusAssigned, requiresAdjuster: true},
	{role: domain.RoleManager, from: domain.ClaimStatusUnderReview, target: domain.ClaimStatusRejected},
	{role: domain.RoleManager, from: domain.ClaimStatusApproved, target: domain.ClaimStatusSettled},

	{role: domain.RoleAdjuster, from: domain.ClaimStatusAssigned, target: domain.ClaimStatusInvestigating, ownerOnly: true},
	{role: domain.RoleAdjuster, from: domain.ClaimStatusAssigned, target: domain.ClaimStatusRejected, ownerOnly: true},
	{role: domain.RoleAdjuster, from: domain.ClaimStatusInvestigating, target: domain.ClaimStatusApproved, requiresAmount: true, ownerOnly: true},
	{role: domain.RoleAdjuster, from: domain.ClaimStatusInvestigating, target: domain.ClaimStatusRejected, ownerOnly: true},
}

// rulesFor returns the candidate rows for a (role, status) pair in
// deterministic order. Admin gets every status except the current one,
// including moves away from terminal states, with the same supplemental-data
// requirements the static rows attach to assigned and approved targets.
func rulesFor(role domain.Role, from domain.ClaimStatus) []rule {
	if role == domain.RoleAdmin {
		rows := make([]rule, 0, len(domain.AllClaimStatuses)-1)
		for _, target := range domain.AllClaimStatuses {
			if target == from {
				continue
			}
			rows = append(rows, rule{
				role:             role,
				from:             from,
				target:           target,
				requiresAdjuster: target == domain.ClaimStatusAssigned,
				requiresAmount:   target == domain.ClaimStatusApproved,
			})
		}
		return rows
	}

	var rows []rule
	for _, r := range ruleTable {
		if r.role == role && r.from == from {
			rows = append(rows, r)
		}
	}
	return rows
}

var actionLabels = map[domain.ClaimStatus]string{
	domain.ClaimStatusSubmitted:     "Reopen as submitted",
	domain.ClaimStatusUnderReview:   "Move to review",
	domain.ClaimStatusAssigned:      "Assign adjuster",
	domain.ClaimStatusInvestigating: "Start investigation",
	domain.ClaimStatusApproved:      "Approve claim",
	domain.ClaimStatusRejected:      "Reject claim",
	domain.ClaimStatusSettled:       "Settle claim",
}

func (r rule) describe() ActionDescriptor {
	return ActionDescriptor{
		Target:           r.target,
		Label:            actionLabels[r.target],
		RequiresAdjuster: r.requiresAdjuster,
		RequiresAmount:   r.requiresAmount,
	}
}
