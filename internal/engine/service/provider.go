package service

import (
	"github.com/caseflow/caseflow/pkg/authz"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(
	NewPermissionService,
	NewTeamMemberService,
	NewTeamService,
	NewCaseService,
	NewDocumentService,
	NewUserService,
	NewRoleService,
	NewAuthService,
	wire.Bind(new(authz.PermissionSource), new(*PermissionService)),
	wire.Bind(new(authz.MembershipSource), new(*TeamMemberService)),
)

var (
	_ authz.PermissionSource = (*PermissionService)(nil)
	_ authz.MembershipSource = (*TeamMemberService)(nil)
)
