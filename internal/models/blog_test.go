package models

import "testing"

func TestCanMutateDirect(t *testing.T) {
	owner := uint(3)
	other := uint(9)

	tests := []struct {
		name      string
		principal Principal
		blog      Blog
		want      bool
	}{
		{
			name:      "owner edits own draft",
			principal: Principal{ID: owner, Role: RoleUser},
			blog:      Blog{Status: BlogStatusDraft, OwnerID: &owner},
			want:      true,
		},
		{
			name:      "owner edits own published post",
			principal: Principal{ID: owner, Role: RoleUser},
			blog:      Blog{Status: BlogStatusPublished, OwnerID: &owner},
			want:      false,
		},
		{
			name:      "non-owner edits draft",
			principal: Principal{ID: other, Role: RoleUser},
			blog:      Blog{Status: BlogStatusDraft, OwnerID: &owner},
			want:      false,
		},
		{
			name:      "ownerless draft",
			principal: Principal{ID: owner, Role: RoleUser},
			blog:      Blog{Status: BlogStatusDraft},
			want:      false,
		},
		{
			name:      "admin edits any published post",
			principal: Principal{ID: other, Role: RoleAdmin},
			blog:      Blog{Status: BlogStatusPublished, OwnerID: &owner},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutateDirect(tt.principal, &tt.blog); got != tt.want {
				t.Errorf("CanMutateDirect() = %v, want %v", got, tt.want)
			}
		})
	}
}
