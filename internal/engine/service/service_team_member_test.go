package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/caseflow/caseflow/internal/engine/model"
	"github.com/caseflow/caseflow/internal/engine/repo"
	"github.com/caseflow/caseflow/pkg/errs"
)

// ---- in-memory fakes ----

type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[string]model.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]model.Team)}
}

func (f *fakeTeamRepo) put(team model.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams[team.TeamId] = team
}

func (f *fakeTeamRepo) WithTx(tx *gorm.DB) repo.ITeamRepository { return f }

func (f *fakeTeamRepo) GetTeamById(teamId string) (*model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[teamId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &team, nil
}

func (f *fakeTeamRepo) GetTeamByCode(code string) (*model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, team := range f.teams {
		if team.Code == code {
			t := team
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepo) GetTeamByName(name string) (*model.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, team := range f.teams {
		if team.Name == name {
			t := team
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTeamRepo) ListTeams(pageNum, pageSize int) ([]model.Team, error) { return nil, nil }
func (f *fakeTeamRepo) CountTeams() (int64, error)                            { return int64(len(f.teams)), nil }

func (f *fakeTeamRepo) AddTeam(team *model.Team) error {
	f.put(*team)
	return nil
}

func (f *fakeTeamRepo) UpdateTeam(teamId string, updates map[string]interface{}) error {
	return nil
}

func (f *fakeTeamRepo) SetManager(teamId, managerId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[teamId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	team.ManagerId = managerId
	f.teams[teamId] = team
	return nil
}

func (f *fakeTeamRepo) SetActive(teamId string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[teamId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	team.IsActive = active
	f.teams[teamId] = team
	return nil
}

func (f *fakeTeamRepo) HardDeleteTeam(teamId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.teams, teamId)
	return nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	nextId  uint64
	members []model.TeamMember

	failRoleUpdate map[uint64]error // 注入指定记录的角色更新失败
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{nextId: 1, failRoleUpdate: make(map[uint64]error)}
}

func (f *fakeMemberRepo) WithTx(tx *gorm.DB) repo.ITeamMemberRepository { return f }

func (f *fakeMemberRepo) GetActiveMember(teamId, userId string) (*model.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.TeamId == teamId && m.UserId == userId && m.IsActive {
			copied := m
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) GetActiveManager(teamId string) (*model.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.members {
		if m.TeamId == teamId && m.Role == model.MemberRoleManager && m.IsActive {
			copied := m
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) ListActiveMembers(teamId string) ([]model.MemberInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var infos []model.MemberInfo
	for _, m := range f.members {
		if m.TeamId == teamId && m.IsActive {
			infos = append(infos, model.MemberInfo{TeamMember: m})
		}
	}
	return infos, nil
}

func (f *fakeMemberRepo) ListMembershipHistory(teamId, userId string) ([]model.TeamMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.TeamMember
	for _, m := range f.members {
		if m.TeamId == teamId && m.UserId == userId {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMemberRepo) GetActiveTeamIds(userId string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var teamIds []string
	for _, m := range f.members {
		if m.UserId == userId && m.IsActive {
			teamIds = append(teamIds, m.TeamId)
		}
	}
	return teamIds, nil
}

func (f *fakeMemberRepo) CountMembershipRows(teamId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.members {
		if m.TeamId == teamId {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberRepo) CountActiveMembers(teamId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, m := range f.members {
		if m.TeamId == teamId && m.IsActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeMemberRepo) AddMember(member *model.TeamMember) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	member.ID = f.nextId
	f.nextId++
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeMemberRepo) UpdateMemberRole(id uint64, role model.MemberRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failRoleUpdate[id]; ok {
		return err
	}
	for i := range f.members {
		if f.members[i].ID == id {
			f.members[i].Role = role
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) Deactivate(id uint64, leftAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.members {
		if f.members[i].ID == id {
			f.members[i].IsActive = false
			f.members[i].LeftAt = &leftAt
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMemberRepo) DeleteByTeam(teamId string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.members[:0]
	for _, m := range f.members {
		if m.TeamId != teamId {
			kept = append(kept, m)
		}
	}
	f.members = kept
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

func (f *fakeUserRepo) put(user model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.UserId] = user
}

func (f *fakeUserRepo) GetUserById(userId string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userId]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ListUsers(pageNum, pageSize int) ([]model.User, error) { return nil, nil }
func (f *fakeUserRepo) CountUsers() (int64, error)                            { return int64(len(f.users)), nil }
func (f *fakeUserRepo) AddUser(user *model.User) error {
	f.put(*user)
	return nil
}
func (f *fakeUserRepo) UpdateUser(userId string, updates map[string]interface{}) error { return nil }
func (f *fakeUserRepo) DeleteUser(userId string) error                                 { return nil }

// fakeTxRunner 通过快照/恢复模拟事务回滚
type fakeTxRunner struct {
	members *fakeMemberRepo
	teams   *fakeTeamRepo
}

func (f *fakeTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.members.mu.Lock()
	memberSnap := make([]model.TeamMember, len(f.members.members))
	copy(memberSnap, f.members.members)
	f.members.mu.Unlock()

	f.teams.mu.Lock()
	teamSnap := make(map[string]model.Team, len(f.teams.teams))
	for k, v := range f.teams.teams {
		teamSnap[k] = v
	}
	f.teams.mu.Unlock()

	if err := fn(nil); err != nil {
		f.members.mu.Lock()
		f.members.members = memberSnap
		f.members.mu.Unlock()

		f.teams.mu.Lock()
		f.teams.teams = teamSnap
		f.teams.mu.Unlock()
		return err
	}
	return nil
}

// ---- fixtures ----

type memberFixture struct {
	svc     *TeamMemberService
	teams   *fakeTeamRepo
	members *fakeMemberRepo
	users   *fakeUserRepo
}

func newMemberFixture() *memberFixture {
	teams := newFakeTeamRepo()
	members := newFakeMemberRepo()
	users := newFakeUserRepo()
	svc := NewTeamMemberService(members, teams, users, &fakeTxRunner{members: members, teams: teams})
	return &memberFixture{svc: svc, teams: teams, members: members, users: users}
}

func (fx *memberFixture) seedTeam(teamId string, active bool) {
	fx.teams.put(model.Team{TeamId: teamId, Code: teamId, Name: "team-" + teamId, IsActive: active})
}

func (fx *memberFixture) seedUser(userId string, enabled int) {
	fx.users.put(model.User{UserId: userId, Username: "user-" + userId, IsEnabled: enabled})
}

// ---- tests ----

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("manager join updates team pointer", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)

		member, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)
		assert.Equal(t, model.MemberRoleManager, member.Role)
		assert.True(t, member.IsActive)
		assert.Nil(t, member.LeftAt)

		team, err := fx.teams.GetTeamById("eng")
		require.NoError(t, err)
		assert.Equal(t, "u1", team.ManagerId)
	})

	t.Run("second active manager is rejected", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		fx.seedUser("u2", 1)

		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)

		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u2", Role: "manager"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("duplicate active membership is rejected", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)

		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)

		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "lead"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("rejoin after leaving creates a new active row", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)

		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)
		require.NoError(t, fx.svc.RemoveMember(ctx, "eng", "u1"))

		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "senior"})
		require.NoError(t, err)

		history, err := fx.members.ListMembershipHistory("eng", "u1")
		require.NoError(t, err)
		assert.Len(t, history, 2)
		assert.False(t, history[0].IsActive)
		assert.NotNil(t, history[0].LeftAt)
		assert.True(t, history[1].IsActive)
	})

	t.Run("precondition failures", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedTeam("frozen", false)
		fx.seedUser("u1", 1)
		fx.seedUser("disabled", 0)

		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "captain"})
		assert.True(t, errs.IsKind(err, errs.KindValidation))

		_, err = fx.svc.AddMember(ctx, "ghost", &model.AddMemberReq{UserId: "u1", Role: "member"})
		assert.True(t, errs.IsKind(err, errs.KindNotFound))

		_, err = fx.svc.AddMember(ctx, "frozen", &model.AddMemberReq{UserId: "u1", Role: "member"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))

		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "ghost", Role: "member"})
		assert.True(t, errs.IsKind(err, errs.KindNotFound))

		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "disabled", Role: "member"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})
}

func TestManagerUniquenessUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	fx := newMemberFixture()
	fx.seedTeam("eng", true)
	fx.seedUser("u1", 1)
	fx.seedUser("u2", 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, userId := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(i int, userId string) {
			defer wg.Done()
			_, results[i] = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: userId, Role: "manager"})
		}(i, userId)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errs.IsKind(err, errs.KindConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	count := 0
	for _, m := range fx.members.members {
		if m.TeamId == "eng" && m.Role == model.MemberRoleManager && m.IsActive {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates and stamps left time", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)

		require.NoError(t, fx.svc.RemoveMember(ctx, "eng", "u1"))

		history, _ := fx.members.ListMembershipHistory("eng", "u1")
		require.Len(t, history, 1)
		assert.False(t, history[0].IsActive)
		assert.NotNil(t, history[0].LeftAt)
	})

	t.Run("second removal returns not found", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)

		require.NoError(t, fx.svc.RemoveMember(ctx, "eng", "u1"))
		err = fx.svc.RemoveMember(ctx, "eng", "u1")
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})

	t.Run("current manager cannot be removed", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)

		err = fx.svc.RemoveMember(ctx, "eng", "u1")
		assert.True(t, errs.IsKind(err, errs.KindConflict))

		member, err := fx.members.GetActiveMember("eng", "u1")
		require.NoError(t, err)
		assert.True(t, member.IsActive)
	})
}

func TestUpdateMemberRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promote to manager updates team pointer", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "lead"})
		require.NoError(t, err)

		require.NoError(t, fx.svc.UpdateMemberRole(ctx, "eng", "u1", &model.UpdateMemberRoleReq{Role: "manager"}))

		member, _ := fx.members.GetActiveMember("eng", "u1")
		assert.Equal(t, model.MemberRoleManager, member.Role)
		team, _ := fx.teams.GetTeamById("eng")
		assert.Equal(t, "u1", team.ManagerId)
	})

	t.Run("promotion blocked when a manager exists", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		fx.seedUser("u2", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)
		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u2", Role: "member"})
		require.NoError(t, err)

		err = fx.svc.UpdateMemberRole(ctx, "eng", "u2", &model.UpdateMemberRoleReq{Role: "manager"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("current manager cannot be demoted here", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)

		err = fx.svc.UpdateMemberRole(ctx, "eng", "u1", &model.UpdateMemberRoleReq{Role: "member"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("missing membership returns not found", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)

		err := fx.svc.UpdateMemberRole(ctx, "eng", "ghost", &model.UpdateMemberRoleReq{Role: "lead"})
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestTransferLeadership(t *testing.T) {
	ctx := context.Background()

	t.Run("full scenario", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		fx.seedUser("u2", 1)

		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)

		// u2 尚未入队，转移被拒
		err = fx.svc.TransferLeadership(ctx, "eng", &model.TransferLeadershipReq{FromUserId: "u1", NewManagerId: "u2"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))

		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u2", Role: "lead"})
		require.NoError(t, err)
		require.NoError(t, fx.svc.TransferLeadership(ctx, "eng", &model.TransferLeadershipReq{FromUserId: "u1", NewManagerId: "u2"}))

		oldManager, _ := fx.members.GetActiveMember("eng", "u1")
		newManager, _ := fx.members.GetActiveMember("eng", "u2")
		team, _ := fx.teams.GetTeamById("eng")
		assert.Equal(t, model.MemberRoleLead, oldManager.Role)
		assert.Equal(t, model.MemberRoleManager, newManager.Role)
		assert.Equal(t, "u2", team.ManagerId)
	})

	t.Run("transfer to self is rejected", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)

		err = fx.svc.TransferLeadership(ctx, "eng", &model.TransferLeadershipReq{FromUserId: "u1", NewManagerId: "u1"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("no manager to transfer from", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)

		err = fx.svc.TransferLeadership(ctx, "eng", &model.TransferLeadershipReq{FromUserId: "u1", NewManagerId: "u1"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))
	})

	t.Run("stale fromUserId is rejected", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		fx.seedUser("u2", 1)
		fx.seedUser("u3", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)
		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u2", Role: "lead"})
		require.NoError(t, err)
		_, err = fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u3", Role: "member"})
		require.NoError(t, err)

		// 在任 manager 已是 u1，基于过期前任 u3 的转移被拒，且什么都不变
		err = fx.svc.TransferLeadership(ctx, "eng", &model.TransferLeadershipReq{FromUserId: "u3", NewManagerId: "u2"})
		assert.True(t, errs.IsKind(err, errs.KindConflict))

		manager, err := fx.members.GetActiveManager("eng")
		require.NoError(t, err)
		assert.Equal(t, "u1", manager.UserId)
		team, _ := fx.teams.GetTeamById("eng")
		assert.Equal(t, "u1", team.ManagerId)
	})

	t.Run("failed transfer changes nothing", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		fx.seedUser("u2", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
		require.NoError(t, err)
		successor, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u2", Role: "lead"})
		require.NoError(t, err)

		fx.members.failRoleUpdate[successor.ID] = assert.AnError
		err = fx.svc.TransferLeadership(ctx, "eng", &model.TransferLeadershipReq{FromUserId: "u1", NewManagerId: "u2"})
		require.Error(t, err)

		// 两步要么都提交要么都不提交
		oldManager, _ := fx.members.GetActiveMember("eng", "u1")
		other, _ := fx.members.GetActiveMember("eng", "u2")
		team, _ := fx.teams.GetTeamById("eng")
		assert.Equal(t, model.MemberRoleManager, oldManager.Role)
		assert.Equal(t, model.MemberRoleLead, other.Role)
		assert.Equal(t, "u1", team.ManagerId)
	})
}

func TestDeleteTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("active membership deactivates the team", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)

		action, err := fx.svc.DeleteTeam(ctx, "eng")
		require.NoError(t, err)
		assert.Equal(t, TeamDeleteDeactivated, action)

		team, err := fx.teams.GetTeamById("eng")
		require.NoError(t, err)
		assert.False(t, team.IsActive)
	})

	t.Run("inactive membership still deactivates", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)
		fx.seedUser("u1", 1)
		_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "member"})
		require.NoError(t, err)
		require.NoError(t, fx.svc.RemoveMember(ctx, "eng", "u1"))

		action, err := fx.svc.DeleteTeam(ctx, "eng")
		require.NoError(t, err)
		assert.Equal(t, TeamDeleteDeactivated, action)

		_, err = fx.teams.GetTeamById("eng")
		assert.NoError(t, err)
	})

	t.Run("no membership rows deletes the team", func(t *testing.T) {
		fx := newMemberFixture()
		fx.seedTeam("eng", true)

		action, err := fx.svc.DeleteTeam(ctx, "eng")
		require.NoError(t, err)
		assert.Equal(t, TeamDeleteDeleted, action)

		_, err = fx.teams.GetTeamById("eng")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown team returns not found", func(t *testing.T) {
		fx := newMemberFixture()
		_, err := fx.svc.DeleteTeam(ctx, "ghost")
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestToggleTeamStatus(t *testing.T) {
	ctx := context.Background()
	fx := newMemberFixture()
	fx.seedTeam("eng", true)

	active, err := fx.svc.ToggleTeamStatus(ctx, "eng")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = fx.svc.ToggleTeamStatus(ctx, "eng")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestMembershipQueries(t *testing.T) {
	ctx := context.Background()
	fx := newMemberFixture()
	fx.seedTeam("eng", true)
	fx.seedTeam("ops", true)
	fx.seedUser("u1", 1)

	_, err := fx.svc.AddMember(ctx, "eng", &model.AddMemberReq{UserId: "u1", Role: "manager"})
	require.NoError(t, err)
	_, err = fx.svc.AddMember(ctx, "ops", &model.AddMemberReq{UserId: "u1", Role: "member"})
	require.NoError(t, err)

	inTeam, err := fx.svc.IsUserInTeam(ctx, "u1", "eng")
	require.NoError(t, err)
	assert.True(t, inTeam)

	inTeam, err = fx.svc.IsUserInTeam(ctx, "u2", "eng")
	require.NoError(t, err)
	assert.False(t, inTeam)

	isManager, err := fx.svc.IsUserTeamManager(ctx, "u1", "eng")
	require.NoError(t, err)
	assert.True(t, isManager)

	isManager, err = fx.svc.IsUserTeamManager(ctx, "u1", "ops")
	require.NoError(t, err)
	assert.False(t, isManager)

	teamIds, err := fx.svc.GetActiveTeamIds(ctx, "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"eng", "ops"}, teamIds)

	teams, err := fx.svc.GetUserTeams(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, teams, 2)
}
