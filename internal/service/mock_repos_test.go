package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yuanqiamanman-1/6667-sub001/internal/model"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
	pkgerrors "github.com/yuanqiamanman-1/6667-sub001/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users   map[string]*model.User // key: user_id
	roles   *mockAdminRoleRepo     // 级联删除用户时一并清理角色分配
	listErr error                  // 注入 ListByIDs 故障
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, f repository.UserFilter) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if !f.IncludeInactive && !u.IsActive {
			continue
		}
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Keyword != "" && !strings.Contains(u.Username, f.Keyword) && !strings.Contains(u.FullName, f.Keyword) {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, int64(len(result)), nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) DeleteCascade(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	if m.roles != nil {
		for aid, a := range m.roles.assignments {
			if a.UserID == id {
				delete(m.roles.assignments, aid)
			}
		}
	}
	return nil
}

func (m *mockUserRepo) RevokeSchoolVerifications(_ context.Context, schoolID string) error {
	for _, u := range m.users {
		if u.SchoolID == schoolID {
			u.StudentVerified = false
			u.TeacherVerified = false
		}
	}
	return nil
}

// ── Mock AdminRoleRepository ──

type mockAdminRoleRepo struct {
	assignments map[string]*model.AdminRoleAssignment
	orgs        *mockOrgRepo // 解析分配绑定组织的 school_id
	seq         int
}

func newMockAdminRoleRepo(orgs *mockOrgRepo) *mockAdminRoleRepo {
	return &mockAdminRoleRepo{assignments: make(map[string]*model.AdminRoleAssignment), orgs: orgs}
}

func (m *mockAdminRoleRepo) Create(_ context.Context, a *model.AdminRoleAssignment) error {
	if a.AssignmentID == "" {
		m.seq++
		a.AssignmentID = fmt.Sprintf("assign-%d", m.seq)
	}
	m.assignments[a.AssignmentID] = a
	return nil
}

func (m *mockAdminRoleRepo) GetByID(_ context.Context, id string) (*model.AdminRoleAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

func (m *mockAdminRoleRepo) ListByUser(_ context.Context, userID string) ([]model.AdminRoleAssignment, error) {
	var result []model.AdminRoleAssignment
	for _, a := range m.assignments {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAdminRoleRepo) ListAll(_ context.Context) ([]model.AdminRoleAssignment, error) {
	var result []model.AdminRoleAssignment
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssignmentID < result[j].AssignmentID })
	return result, nil
}

func (m *mockAdminRoleRepo) ExistsForUserOrg(_ context.Context, userID, orgID string) (bool, error) {
	for _, a := range m.assignments {
		if a.UserID == userID && a.OrganizationID != nil && *a.OrganizationID == orgID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAdminRoleRepo) schoolOf(a *model.AdminRoleAssignment) string {
	if a.Organization != nil {
		return a.Organization.SchoolID
	}
	if a.OrganizationID != nil && m.orgs != nil {
		if org, ok := m.orgs.orgs[*a.OrganizationID]; ok {
			return org.SchoolID
		}
	}
	return ""
}

func (m *mockAdminRoleRepo) CountByRoleAndSchool(_ context.Context, roleCode, schoolID string) (int64, error) {
	var n int64
	for _, a := range m.assignments {
		if a.RoleCode == roleCode && m.schoolOf(a) == schoolID {
			n++
		}
	}
	return n, nil
}

func (m *mockAdminRoleRepo) SchoolsWithRole(_ context.Context, roleCode string) (map[string]int, error) {
	result := make(map[string]int)
	for _, a := range m.assignments {
		if a.RoleCode != roleCode {
			continue
		}
		if school := m.schoolOf(a); school != "" {
			result[school]++
		}
	}
	return result, nil
}

// ── Mock OrganizationRepository ──

type mockOrgRepo struct {
	orgs map[string]*model.Organization
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{orgs: make(map[string]*model.Organization)}
}

func (m *mockOrgRepo) Create(_ context.Context, org *model.Organization) error {
	if org.OrgID == "" {
		org.OrgID = "org-" + org.Type + "-" + org.SchoolID + org.DisplayName
	}
	m.orgs[org.OrgID] = org
	return nil
}

func (m *mockOrgRepo) GetByID(_ context.Context, id string) (*model.Organization, error) {
	if o, ok := m.orgs[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrgRepo) FirstByTypeSchool(_ context.Context, orgType, schoolID string) (*model.Organization, error) {
	for _, o := range m.orgs {
		if o.Type == orgType && o.SchoolID == schoolID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrgRepo) FirstByAidSchool(_ context.Context, aidSchoolID string) (*model.Organization, error) {
	for _, o := range m.orgs {
		if o.AidSchoolID != nil && *o.AidSchoolID == aidSchoolID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrgRepo) FirstByTypeName(_ context.Context, orgType, displayName string) (*model.Organization, error) {
	for _, o := range m.orgs {
		if o.Type == orgType && o.DisplayName == displayName {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrgRepo) Update(_ context.Context, org *model.Organization) error {
	m.orgs[org.OrgID] = org
	return nil
}

func (m *mockOrgRepo) List(_ context.Context, f repository.OrgFilter) ([]model.Organization, error) {
	var result []model.Organization
	for _, o := range m.orgs {
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		if f.Certified != nil && o.Certified != *f.Certified {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrgID < result[j].OrgID })
	return result, nil
}

func (m *mockOrgRepo) ListUniversitySchoolIDs(_ context.Context) ([]string, error) {
	var result []string
	for _, o := range m.orgs {
		if o.Type == model.OrgTypeUniversity {
			result = append(result, o.SchoolID)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockOrgRepo) DeleteBySchool(_ context.Context, schoolID string) error {
	for id, o := range m.orgs {
		if o.SchoolID == schoolID && (o.Type == model.OrgTypeUniversity || o.Type == model.OrgTypeAssociation) {
			delete(m.orgs, id)
		}
	}
	return nil
}

// ── Mock VerificationRepository ──

type mockVerificationRepo struct {
	requests map[string]*model.VerificationRequest
	users    *mockUserRepo        // 批准后的角色晋升
	pool     *mockTeacherPoolRepo // 批准讲师认证的建档副作用
	seq      int
}

func newMockVerificationRepo(users *mockUserRepo, pool *mockTeacherPoolRepo) *mockVerificationRepo {
	return &mockVerificationRepo{
		requests: make(map[string]*model.VerificationRequest),
		users:    users,
		pool:     pool,
	}
}

func (m *mockVerificationRepo) Create(_ context.Context, req *model.VerificationRequest) error {
	if req.RequestID == "" {
		m.seq++
		req.RequestID = fmt.Sprintf("verif-%d", m.seq)
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockVerificationRepo) GetByID(_ context.Context, id string) (*model.VerificationRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockVerificationRepo) List(_ context.Context, f repository.VerificationFilter) ([]model.VerificationRequest, int64, error) {
	var result []model.VerificationRequest
	for _, r := range m.requests {
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.SchoolID != "" && r.TargetSchoolID != f.SchoolID {
			continue
		}
		if f.ApplicantID != "" && r.ApplicantID != f.ApplicantID {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return result, int64(len(result)), nil
}

func (m *mockVerificationRepo) ApplyReview(ctx context.Context, id string, approve bool, reviewerID, reason string) (*model.VerificationRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.Status != model.ReviewStatusPending {
		return nil, pkgerrors.ErrAlreadyReviewed
	}

	now := time.Now()
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	if approve {
		r.Status = model.ReviewStatusApproved
	} else {
		r.Status = model.ReviewStatusRejected
		r.RejectedReason = &reason
	}

	if approve && r.Type == model.VerifTypeVolunteerTeacher {
		m.pool.records[r.ApplicantID] = &model.VolunteerTeacherRecord{
			UserID:    r.ApplicantID,
			SchoolID:  r.TargetSchoolID,
			Tags:      r.Tags,
			TimeSlots: r.TimeSlots,
			InPool:    true,
			UpdatedAt: now,
		}
		if u, ok := m.users.users[r.ApplicantID]; ok {
			u.Role = model.UserRoleVolunteerTeacher
			u.TeacherVerified = true
		}
	}
	if approve && r.Type == model.VerifTypeGeneralBasic {
		if u, ok := m.users.users[r.ApplicantID]; ok {
			u.StudentVerified = true
		}
	}
	return r, nil
}

// ── Mock TeacherPoolRepository ──

type mockTeacherPoolRepo struct {
	records map[string]*model.VolunteerTeacherRecord
}

func newMockTeacherPoolRepo() *mockTeacherPoolRepo {
	return &mockTeacherPoolRepo{records: make(map[string]*model.VolunteerTeacherRecord)}
}

func (m *mockTeacherPoolRepo) Get(_ context.Context, userID string) (*model.VolunteerTeacherRecord, error) {
	if r, ok := m.records[userID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherPoolRepo) List(_ context.Context, f repository.TeacherPoolFilter) ([]model.VolunteerTeacherRecord, int64, error) {
	var result []model.VolunteerTeacherRecord
	for _, r := range m.records {
		if f.SchoolID != "" && r.SchoolID != f.SchoolID {
			continue
		}
		if f.OnlyInPool && !r.InPool {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, int64(len(result)), nil
}

func (m *mockTeacherPoolRepo) SetInPool(_ context.Context, userID string, inPool bool) error {
	r, ok := m.records[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.InPool = inPool
	r.UpdatedAt = time.Now()
	return nil
}

// ── Mock PointsRepository ──

type mockPointsRepo struct {
	balances    map[string]int64
	txns        []model.PointsTransaction
	redemptions []model.Redemption
	seq         int64
}

func newMockPointsRepo() *mockPointsRepo {
	return &mockPointsRepo{balances: make(map[string]int64)}
}

func (m *mockPointsRepo) appendTxn(userID, txnType, title string, delta int64, meta model.Metadata) *model.PointsTransaction {
	m.seq++
	txn := model.PointsTransaction{
		TxnID:     fmt.Sprintf("txn-%d", m.seq),
		Seq:       m.seq,
		UserID:    userID,
		Type:      txnType,
		Delta:     delta,
		Title:     title,
		Metadata:  meta,
		CreatedAt: time.Now(),
	}
	m.txns = append(m.txns, txn)
	m.balances[userID] += delta
	return &m.txns[len(m.txns)-1]
}

func (m *mockPointsRepo) Credit(_ context.Context, userID string, amount int64, txnType, title string, meta model.Metadata) (*model.PointsTransaction, error) {
	return m.appendTxn(userID, txnType, title, amount, meta), nil
}

func (m *mockPointsRepo) Debit(_ context.Context, userID string, amount int64, txnType, title string, meta model.Metadata) (*model.PointsTransaction, error) {
	if m.balances[userID] < amount {
		return nil, pkgerrors.ErrInsufficientPoints
	}
	return m.appendTxn(userID, txnType, title, -amount, meta), nil
}

func (m *mockPointsRepo) Redeem(_ context.Context, userID, itemID, itemName string, cost int64) (*model.Redemption, error) {
	if m.balances[userID] < cost {
		return nil, pkgerrors.ErrInsufficientPoints
	}
	txn := m.appendTxn(userID, model.PointsTxnRedeem, "兑换："+itemName, -cost,
		model.Metadata{"item_id": itemID, "item_name": itemName})
	redemption := model.Redemption{
		RedemptionID: fmt.Sprintf("rdm-%d", m.seq),
		UserID:       userID,
		ItemID:       itemID,
		ItemName:     itemName,
		PointsCost:   cost,
		TxnID:        txn.TxnID,
		CreatedAt:    time.Now(),
	}
	m.redemptions = append(m.redemptions, redemption)
	return &m.redemptions[len(m.redemptions)-1], nil
}

func (m *mockPointsRepo) GetBalance(_ context.Context, userID string) (int64, error) {
	return m.balances[userID], nil
}

func (m *mockPointsRepo) ListTransactions(_ context.Context, f repository.TxnFilter) ([]model.PointsTransaction, int64, error) {
	var result []model.PointsTransaction
	for i := len(m.txns) - 1; i >= 0; i-- {
		t := m.txns[i]
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		result = append(result, t)
	}
	return result, int64(len(result)), nil
}

func (m *mockPointsRepo) ListRedemptions(_ context.Context, userID string, _, _ int) ([]model.Redemption, int64, error) {
	var result []model.Redemption
	for i := len(m.redemptions) - 1; i >= 0; i-- {
		if m.redemptions[i].UserID == userID {
			result = append(result, m.redemptions[i])
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockPointsRepo) ListAllTransactions(_ context.Context) ([]model.PointsTransaction, error) {
	result := make([]model.PointsTransaction, len(m.txns))
	copy(result, m.txns)
	return result, nil
}

// ── Mock SystemEventRepository ──

type mockSystemEventRepo struct {
	events map[string]*model.SystemEvent
	seq    int
}

func newMockSystemEventRepo() *mockSystemEventRepo {
	return &mockSystemEventRepo{events: make(map[string]*model.SystemEvent)}
}

func (m *mockSystemEventRepo) Create(_ context.Context, event *model.SystemEvent) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("event-%d", m.seq)
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockSystemEventRepo) GetByID(_ context.Context, id string) (*model.SystemEvent, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSystemEventRepo) List(_ context.Context, f repository.EventFilter) ([]model.SystemEvent, int64, error) {
	var result []model.SystemEvent
	for _, e := range m.events {
		if f.Group != "" && e.Group != f.Group {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EventID < result[j].EventID })
	return result, int64(len(result)), nil
}

func (m *mockSystemEventRepo) Transition(_ context.Context, id, toStatus, handlerID string) (*model.SystemEvent, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	allowed := map[string][]string{
		model.EventStatusAck:    {model.EventStatusOpen},
		model.EventStatusClosed: {model.EventStatusOpen, model.EventStatusAck},
	}
	legal := false
	for _, from := range allowed[toStatus] {
		if e.Status == from {
			legal = true
			break
		}
	}
	if !legal {
		return nil, pkgerrors.ErrInvalidTransition
	}

	now := time.Now()
	e.Status = toStatus
	e.HandledBy = &handlerID
	e.HandledAt = &now
	return e, nil
}

func (m *mockSystemEventRepo) CountOpenUrgent(_ context.Context) (int64, error) {
	var n int64
	for _, e := range m.events {
		if e.Group == model.EventGroupUrgent && e.Status == model.EventStatusOpen {
			n++
		}
	}
	return n, nil
}

// ── Mock AssociationTaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.AssociationTask
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.AssociationTask)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.AssociationTask) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.AssociationTask, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context, f repository.TaskFilter) ([]model.AssociationTask, int64, error) {
	var result []model.AssociationTask
	for _, t := range m.tasks {
		if f.SchoolID != "" && t.SchoolID != f.SchoolID {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TaskID < result[j].TaskID })
	return result, int64(len(result)), nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	items map[string]*model.Announcement
	seq   int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{items: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		m.seq++
		a.AnnouncementID = fmt.Sprintf("ann-%d", m.seq)
	}
	m.items[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.items[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockAnnouncementRepo) List(_ context.Context, f repository.AnnouncementFilter) ([]model.Announcement, int64, error) {
	var result []model.Announcement
	for _, a := range m.items {
		if f.Scope != "" && a.Scope != f.Scope {
			continue
		}
		if f.SchoolID != "" && a.SchoolID != f.SchoolID {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AnnouncementID < result[j].AnnouncementID })
	return result, int64(len(result)), nil
}

// ── Mock TagRepository ──

type mockTagRepo struct {
	tags map[string]*model.Tag
	seq  int
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{tags: make(map[string]*model.Tag)}
}

func (m *mockTagRepo) Create(_ context.Context, tag *model.Tag) error {
	if tag.TagID == "" {
		m.seq++
		tag.TagID = fmt.Sprintf("tag-%d", m.seq)
	}
	m.tags[tag.TagID] = tag
	return nil
}

func (m *mockTagRepo) GetByID(_ context.Context, id string) (*model.Tag, error) {
	if t, ok := m.tags[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTagRepo) Update(_ context.Context, tag *model.Tag) error {
	m.tags[tag.TagID] = tag
	return nil
}

func (m *mockTagRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.tags[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.tags, id)
	return nil
}

func (m *mockTagRepo) ListEnabled(_ context.Context) ([]model.Tag, error) {
	var result []model.Tag
	for _, t := range m.tags {
		if t.Enabled {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TagID < result[j].TagID })
	return result, nil
}

func (m *mockTagRepo) ListAll(_ context.Context) ([]model.Tag, error) {
	var result []model.Tag
	for _, t := range m.tags {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TagID < result[j].TagID })
	return result, nil
}

// ── Mock OnboardingRepository ──

type mockOnboardingRepo struct {
	requests map[string]*model.OnboardingRequest
	users    *mockUserRepo
	orgs     *mockOrgRepo
	roles    *mockAdminRoleRepo
	seq      int
}

func newMockOnboardingRepo(users *mockUserRepo, orgs *mockOrgRepo, roles *mockAdminRoleRepo) *mockOnboardingRepo {
	return &mockOnboardingRepo{
		requests: make(map[string]*model.OnboardingRequest),
		users:    users,
		orgs:     orgs,
		roles:    roles,
	}
}

func (m *mockOnboardingRepo) Create(_ context.Context, req *model.OnboardingRequest) error {
	if req.RequestID == "" {
		m.seq++
		req.RequestID = fmt.Sprintf("onboard-%d", m.seq)
	}
	m.requests[req.RequestID] = req
	return nil
}

func (m *mockOnboardingRepo) GetByID(_ context.Context, id string) (*model.OnboardingRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOnboardingRepo) List(_ context.Context, f repository.OnboardingFilter) ([]model.OnboardingRequest, int64, error) {
	var result []model.OnboardingRequest
	for _, r := range m.requests {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return result, int64(len(result)), nil
}

func (m *mockOnboardingRepo) ApplyReview(ctx context.Context, id string, approve bool, reviewerID, reason string) (*model.OnboardingRequest, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.Status != model.ReviewStatusPending {
		return nil, pkgerrors.ErrAlreadyReviewed
	}

	now := time.Now()
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now

	if !approve {
		r.Status = model.ReviewStatusRejected
		r.RejectedReason = &reason
		if u, ok := m.users.users[r.UserID]; ok {
			u.OnboardingStatus = model.OnboardingRejected
		}
		return r, nil
	}

	r.Status = model.ReviewStatusApproved

	displayName := r.SchoolName
	if r.AssociationName != nil && *r.AssociationName != "" {
		displayName = *r.AssociationName
	}
	schoolID := repository.DeriveSchoolCode("uni", r.SchoolName)
	org := &model.Organization{
		Type:        r.OrgType,
		DisplayName: displayName,
		SchoolID:    schoolID,
		Certified:   true,
	}
	_ = m.orgs.Create(ctx, org)

	roleCode := map[string]string{
		model.OrgTypeUniversity:  "university_admin",
		model.OrgTypeAssociation: "university_association_admin",
		model.OrgTypeAidSchool:   "aid_school_admin",
	}[r.OrgType]
	_ = m.roles.Create(ctx, &model.AdminRoleAssignment{
		UserID:         r.UserID,
		RoleCode:       roleCode,
		OrganizationID: &org.OrgID,
		Organization:   org,
	})

	if u, ok := m.users.users[r.UserID]; ok {
		u.Role = model.UserRoleGovernance
		u.OnboardingStatus = model.OnboardingApproved
		u.SchoolID = org.SchoolID
		u.OrganizationID = &org.OrgID
	}
	return r, nil
}

// ── 聚合装配 ──

type testRepos struct {
	users        *mockUserRepo
	roles        *mockAdminRoleRepo
	orgs         *mockOrgRepo
	verification *mockVerificationRepo
	pool         *mockTeacherPoolRepo
	points       *mockPointsRepo
	events       *mockSystemEventRepo
	tasks        *mockTaskRepo
	anns         *mockAnnouncementRepo
	tags         *mockTagRepo
	onboarding   *mockOnboardingRepo
}

func newTestRepos() (*testRepos, *repository.Repository) {
	users := newMockUserRepo()
	orgs := newMockOrgRepo()
	roles := newMockAdminRoleRepo(orgs)
	users.roles = roles
	pool := newMockTeacherPoolRepo()
	verification := newMockVerificationRepo(users, pool)
	points := newMockPointsRepo()
	events := newMockSystemEventRepo()
	tasks := newMockTaskRepo()
	anns := newMockAnnouncementRepo()
	tags := newMockTagRepo()
	onboarding := newMockOnboardingRepo(users, orgs, roles)

	mocks := &testRepos{
		users: users, roles: roles, orgs: orgs,
		verification: verification, pool: pool, points: points,
		events: events, tasks: tasks, anns: anns, tags: tags,
		onboarding: onboarding,
	}
	repo := &repository.Repository{
		User:         users,
		AdminRole:    roles,
		Org:          orgs,
		Verification: verification,
		TeacherPool:  pool,
		Points:       points,
		SystemEvent:  events,
		Task:         tasks,
		Announcement: anns,
		Tag:          tags,
		Onboarding:   onboarding,
	}
	return mocks, repo
}
