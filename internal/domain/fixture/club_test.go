package fixture

import "testing"

func TestClubProfile_Result(t *testing.T) {
	t.Parallel()

	club := DefaultClubProfile()
	tests := []struct {
		name string
		f    Fixture
		want string
	}{
		{
			name: "home win",
			f:    Fixture{HomeTeam: DefaultClubName, AwayTeam: "Keith", IsCompleted: true, HomeScore: ptr(3), AwayScore: ptr(1)},
			want: ResultWin,
		},
		{
			name: "away loss",
			f:    Fixture{HomeTeam: "Brechin City", AwayTeam: DefaultClubName, IsCompleted: true, HomeScore: ptr(2), AwayScore: ptr(0)},
			want: ResultLoss,
		},
		{
			name: "draw ignores case",
			f:    Fixture{HomeTeam: "banks o' dee", AwayTeam: "Huntly", IsCompleted: true, HomeScore: ptr(1), AwayScore: ptr(1)},
			want: ResultDraw,
		},
		{
			name: "completed without score",
			f:    Fixture{HomeTeam: DefaultClubName, AwayTeam: "Keith", IsCompleted: true},
		},
		{
			name: "club not involved",
			f:    Fixture{HomeTeam: "Keith", AwayTeam: "Huntly", IsCompleted: true, HomeScore: ptr(1), AwayScore: ptr(0)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := club.Result(tc.f); got != tc.want {
				t.Fatalf("unexpected result: got=%q want=%q", got, tc.want)
			}
		})
	}
}
