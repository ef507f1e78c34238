package mess_test

import (
	"context"
	"fmt"
	"time"

	mess "github.com/sudharshan-del/Hostel-Management"
	"github.com/sudharshan-del/Hostel-Management/store"
)

func ExampleNew() {
	svc := mess.New(mess.WithStore(store.NewMemoryStore()))
	defer svc.Close()

	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		fmt.Println(err)
		return
	}

	svc.Vote(ctx, mess.Good)
	svc.Vote(ctx, mess.Good)
	svc.Vote(ctx, mess.Poor)

	stats, _ := svc.Stats(ctx)
	fmt.Printf("good=%d avg=%d poor=%d\n", stats.Good, stats.Average, stats.Poor)
	// Output: good=2 avg=0 poor=1
}

func ExampleService_Menu() {
	svc := mess.New()
	defer svc.Close()

	menu, _ := svc.Menu(context.Background(), time.Monday)
	fmt.Println(menu.Snacks.Item)
	// Output: Samosa
}

func ExampleParseVote() {
	for _, s := range []string{"0", "avg", "2", "great"} {
		v, err := mess.ParseVote(s)
		fmt.Println(v, err)
	}
	// Output:
	// good <nil>
	// average <nil>
	// poor <nil>
	// good mess: invalid vote: "great"
}

func ExampleService_Stats_unreadable() {
	svc := mess.New()
	defer svc.Close()

	// Without Start the store holds no counters, so Stats reports an error
	// instead of zeros.
	_, err := svc.Stats(context.Background())
	fmt.Println(err)
	// Output: mess: read stats: mess/store: storage unreadable: memory region not initialized
}
