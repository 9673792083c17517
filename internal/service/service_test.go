package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"poco-backend/config"
	"poco-backend/internal/repository"
	"poco-backend/pkg/db"
	"poco-backend/pkg/password"

	"gorm.io/gorm"
)

func init() {
	password.SetCost(4)
}

type services struct {
	orm      *gorm.DB
	users    *UserService
	friends  *FriendService
	messages *MessageService
}

func setup(t *testing.T) *services {
	t.Helper()
	orm, err := db.Open(config.DatabaseConfig{Driver: db.DriverSQLite, Database: ":memory:", MaxIdle: 1, MaxOpen: 1})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := orm.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := db.EnsureSchema(orm); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	return &services{
		orm:      orm,
		users:    NewUserService(repository.NewUserRepository(orm)),
		friends:  NewFriendService(repository.NewFriendRepository(orm)),
		messages: NewMessageService(repository.NewMessageRepository(orm)),
	}
}

func (s *services) register(t *testing.T, name string) uint {
	t.Helper()
	id, err := s.users.Register(context.Background(), name, name+"@x.com", "pw-"+name)
	if err != nil {
		t.Fatalf("Register(%s) error = %v", name, err)
	}
	return id
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	id, err := s.users.Register(ctx, "Ann", "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if id == 0 {
		t.Fatal("Register() returned zero id")
	}

	identity, err := s.users.Authenticate(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if identity.ID != id || identity.Name != "Ann" {
		t.Errorf("Authenticate() = %+v, want {%d Ann}", identity, id)
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	s := setup(t)
	s.register(t, "ann")

	var stored string
	if err := s.orm.Table("users").Select("password").Where("email = ?", "ann@x.com").Scan(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored == "" || stored == "pw-ann" {
		t.Errorf("stored password = %q, want a bcrypt hash", stored)
	}
	if err := password.Verify("pw-ann", stored); err != nil {
		t.Errorf("Verify(stored hash) error = %v", err)
	}
}

func TestRegister_Errors(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.register(t, "ann")

	tests := []struct {
		name                 string
		uname, email, passwd string
		want                 error
	}{
		{"duplicate email", "Other", "ann@x.com", "pw", ErrDuplicateEmail},
		{"missing name", "", "b@x.com", "pw", ErrInvalidInput},
		{"empty email", "Bob", "", "pw", ErrInvalidInput},
		{"missing password", "Bob", "b@x.com", "", ErrInvalidInput},
		{"password too long", "Bob", "b@x.com", strings.Repeat("p", 73), ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.users.Register(ctx, tt.uname, tt.email, tt.passwd)
			if !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("ListUsers() = %+v, want only the first user", users)
	}
}

func TestRegister_KeepsValuesAsGiven(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	// 只做存在性校验，空白字符原样保存
	id, err := s.users.Register(ctx, "  ", " d@x.com ", "pw")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	identity, err := s.users.Authenticate(ctx, " d@x.com ", "pw")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if identity.ID != id || identity.Name != "  " {
		t.Errorf("Authenticate() = %+v, want {%d \"  \"}", identity, id)
	}
	if _, err := s.users.Authenticate(ctx, "d@x.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate(unpadded) error = %v, want ErrInvalidCredentials", err)
	}

	msgID, err := s.messages.Send(ctx, id, id, "   ")
	if err != nil {
		t.Fatalf("Send(whitespace) error = %v", err)
	}
	conv, err := s.messages.Conversation(ctx, id, id)
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if msgID == 0 || len(conv) != 1 || conv[0].Body != "   " {
		t.Errorf("Conversation() = %+v, want one whitespace message", conv)
	}
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	s.register(t, "ann")

	tests := []struct {
		name, email, passwd string
		want                error
	}{
		{"wrong password", "ann@x.com", "nope", ErrInvalidCredentials},
		{"unknown email", "ghost@x.com", "pw-ann", ErrInvalidCredentials},
		{"missing password", "ann@x.com", "", ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := s.users.Authenticate(ctx, tt.email, tt.passwd)
			if !errors.Is(err, tt.want) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.want)
			}
			if identity != nil {
				t.Errorf("Authenticate() identity = %+v, want nil", identity)
			}
		})
	}
}

func TestListUsers_Empty(t *testing.T) {
	s := setup(t)
	users, err := s.users.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("ListUsers() = %#v, want empty non-nil slice", users)
	}
}

func TestFriendLifecycle(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	a, b := s.register(t, "a"), s.register(t, "b")

	if err := s.friends.SendRequest(ctx, a, b); err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}

	// 未接受前双方都没有好友
	for _, id := range []uint{a, b} {
		list, err := s.friends.ListFriends(ctx, id)
		if err != nil {
			t.Fatalf("ListFriends() error = %v", err)
		}
		if len(list) != 0 {
			t.Errorf("ListFriends(%d) before accept = %+v, want empty", id, list)
		}
	}

	// 发起方不能替对方接受
	accepted, err := s.friends.Accept(ctx, a, b)
	if err != nil || accepted {
		t.Errorf("Accept(requester side) = %v, %v; want false, nil", accepted, err)
	}

	accepted, err = s.friends.Accept(ctx, b, a)
	if err != nil || !accepted {
		t.Fatalf("Accept() = %v, %v; want true, nil", accepted, err)
	}
	accepted, err = s.friends.Accept(ctx, b, a)
	if err != nil || accepted {
		t.Errorf("repeat Accept() = %v, %v; want false, nil", accepted, err)
	}

	listA, _ := s.friends.ListFriends(ctx, a)
	listB, _ := s.friends.ListFriends(ctx, b)
	if len(listA) != 1 || listA[0].ID != b || listA[0].Email != "b@x.com" {
		t.Errorf("ListFriends(a) = %+v, want [b]", listA)
	}
	if len(listB) != 1 || listB[0].ID != a {
		t.Errorf("ListFriends(b) = %+v, want [a]", listB)
	}
}

func TestSendRequest_Errors(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	a, b := s.register(t, "a"), s.register(t, "b")
	if err := s.friends.SendRequest(ctx, a, b); err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}

	tests := []struct {
		name             string
		userID, friendID uint
		want             error
	}{
		{"duplicate", a, b, ErrDuplicateRequest},
		{"self", a, a, ErrInvalidInput},
		{"zero id", 0, b, ErrInvalidInput},
		{"unknown user", a, 999, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.friends.SendRequest(ctx, tt.userID, tt.friendID); !errors.Is(err, tt.want) {
				t.Errorf("SendRequest() error = %v, want %v", err, tt.want)
			}
		})
	}

	// 反方向是另一条有向边，允许创建
	if err := s.friends.SendRequest(ctx, b, a); err != nil {
		t.Errorf("reverse SendRequest() error = %v", err)
	}
}

func TestAccept_Concurrent(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	a, b := s.register(t, "a"), s.register(t, "b")
	if err := s.friends.SendRequest(ctx, a, b); err != nil {
		t.Fatalf("SendRequest() error = %v", err)
	}

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.friends.Accept(ctx, b, a)
			if err != nil {
				t.Errorf("Accept() error = %v", err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("transitions = %d, want exactly 1", wins)
	}
}

func TestMessages(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	a, b, c := s.register(t, "a"), s.register(t, "b"), s.register(t, "c")

	send := func(from, to uint, body string) uint {
		t.Helper()
		id, err := s.messages.Send(ctx, from, to, body)
		if err != nil {
			t.Fatalf("Send(%q) error = %v", body, err)
		}
		return id
	}
	first := send(a, b, "hi")
	send(c, a, "noise")
	second := send(b, a, "yo")
	if second <= first {
		t.Errorf("message ids not increasing: %d then %d", first, second)
	}

	conv, err := s.messages.Conversation(ctx, a, b)
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if len(conv) != 2 || conv[0].Body != "hi" || conv[1].Body != "yo" {
		t.Fatalf("Conversation(a, b) = %+v, want [hi yo]", conv)
	}
	if conv[0].SenderID != a || conv[0].ReceiverID != b {
		t.Errorf("first message = %+v, want a->b", conv[0])
	}

	empty, err := s.messages.Conversation(ctx, b, c)
	if err != nil {
		t.Fatalf("Conversation() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Conversation(b, c) = %#v, want empty non-nil slice", empty)
	}
}

func TestSend_Errors(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	a := s.register(t, "a")

	tests := []struct {
		name     string
		from, to uint
		body     string
	}{
		{"empty body", a, a, ""},
		{"zero sender", 0, a, "hi"},
		{"unknown receiver", a, 999, "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.messages.Send(ctx, tt.from, tt.to, tt.body)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Send() error = %v, want ErrInvalidInput", err)
			}
			if id != 0 {
				t.Errorf("Send() id = %d, want 0", id)
			}
		})
	}
}

func TestStorageFailure(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	sqlDB, err := s.orm.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()

	if _, err := s.users.ListUsers(ctx); !errors.Is(err, ErrStorageFailure) {
		t.Errorf("ListUsers() error = %v, want ErrStorageFailure", err)
	}
	if _, err := s.users.Register(ctx, "a", "a@x.com", "pw"); !errors.Is(err, ErrStorageFailure) {
		t.Errorf("Register() error = %v, want ErrStorageFailure", err)
	}
	if _, err := s.friends.Accept(ctx, 1, 2); !errors.Is(err, ErrStorageFailure) {
		t.Errorf("Accept() error = %v, want ErrStorageFailure", err)
	}
	if _, err := s.messages.Conversation(ctx, 1, 2); !errors.Is(err, ErrStorageFailure) {
		t.Errorf("Conversation() error = %v, want ErrStorageFailure", err)
	}
}
