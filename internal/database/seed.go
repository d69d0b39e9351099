package database

import "database/sql"

// seedCatalog is the fixed competition roster, inserted idempotently at
// startup. 26.1 is an open-ended AMRAP scored in repetitions; 26.2 and 26.3
// are for-time workouts with capped completion.
var seedCatalog = []Event{
	{
		ID:    "26.1",
		Label: "Open 26.1",
		Kind:  "reps",
		Description: `AMRAP 15 minutes:
3 lateral burpees over the dumbbell
3 dumbbell hang clean-to-overheads
30-foot walking lunge (2 x 15 feet)
After completing each round, add 3 reps to the burpees and hang clean-to-overheads.
F 35-lb (15-kg) dumbbell / M 50-lb (22.5-kg) dumbbell`,
		Instructions: `This workout is a 15 minute AMRAP. Enter your total number of repetitions.`,
	},
	{
		ID:             "26.2",
		Label:          "Open 26.2",
		Kind:           "time",
		TimecapSeconds: sql.NullInt64{Int64: 12 * 60, Valid: true},
		Description: `For time:
21 pull-ups
42 double-unders
21 thrusters (weight 1)
18 chest-to-bar pull-ups
36 double-unders
18 thrusters (weight 2)
15 bar muscle-ups
30 double-unders
15 thrusters (weight 3)
Time cap: 12 minutes
F 65, 75, 85 lb (29, 34, 38 kg) / M 95, 115, 135 lb (43, 52, 61 kg)`,
		Instructions: `If you finish before the time cap, enter your time as MM:SS.
If you hit the cap, enter CAP:XX where XX is one second per missing repetition (e.g. CAP:05 ranks as 12:05).`,
	},
	{
		ID:             "26.3",
		Label:          "Open 26.3",
		Kind:           "time",
		TimecapSeconds: sql.NullInt64{Int64: 20 * 60, Valid: true},
		Description: `For time:
5 wall walks
50-calorie row
5 wall walks
26 deadlifts
5 wall walks
26 cleans
5 wall walks
26 snatches
5 wall walks
50-calorie row
Time cap: 20 minutes
F 155-lb (70-kg) deadlift, 85-lb (38-kg) clean, 65-lb (29-kg) snatch / M 225-lb (102-kg) deadlift, 135-lb (61-kg) clean, 95-lb (43-kg) snatch`,
		Instructions: `If you finish before the time cap, enter your time as MM:SS.
If you hit the cap, enter CAP:XX where XX is one second per missing repetition.`,
	},
}
