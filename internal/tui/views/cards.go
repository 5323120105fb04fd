package views

// notice is the text shown on one lock-screen notification.
type notice struct {
	app  string
	body string
}

// notices rotate in spawn order so a replayed dive looks the same.
var notices = []notice{
	{"Messages", "hey, are you up?"},
	{"Mail", "3 new messages in Promotions"},
	{"Photos", "You have a new memory from last year"},
	{"News", "Breaking: you won't believe what happened next"},
	{"Chat", "@you was mentioned in #general"},
	{"Shop", "Your cart misses you. 20% off ends tonight"},
	{"Video", "A creator you follow just went live"},
	{"Social", "12 people liked your post"},
	{"Calendar", "Standup in 5 minutes"},
	{"Games", "Your energy is full. Come back and play!"},
	{"Fitness", "You are 2,000 steps behind yesterday"},
	{"Weather", "Rain expected in the next hour"},
}

func noticeFor(seq int) notice {
	if seq < 1 {
		seq = 1
	}
	return notices[(seq-1)%len(notices)]
}
