package photo

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/photo-analyzer/internal/vision"
)

var _ = Describe("Render", func() {
	var (
		p    Photo
		res  *vision.Result
		err  error
		view View
	)

	BeforeEach(func() {
		p = Photo{Filename: "dog.jpg", ContentType: "image/jpeg", Data: []byte("jpeg bytes")}
		res = &vision.Result{
			Caption: &vision.Caption{Text: "a dog sitting on grass", Confidence: 0.9},
			Tags: []vision.Tag{
				{Name: "dog", Confidence: 0.95},
				{Name: "grass", Confidence: 0.6},
				{Name: "animal", Confidence: 0.4},
			},
		}
		err = nil
	})

	JustBeforeEach(func() {
		view = Render(p, res, err)
	})

	When("the analysis succeeds with caption and tags", func() {
		It("is displayed", func() {
			Expect(view.State).To(Equal(StateDisplayed))
		})

		It("shows the caption verbatim", func() {
			Expect(view.Caption).To(Equal("a dog sitting on grass"))
		})

		It("lists only relevant tags in order", func() {
			Expect(view.Tags).To(Equal([]string{"dog", "grass"}))
			Expect(view.TagLine()).To(Equal("dog, grass"))
		})

		It("speaks the caption in en-US", func() {
			Expect(view.Speak).To(Equal(&SpeakCommand{Text: "a dog sitting on grass", Lang: "en-US"}))
		})

		It("has no error", func() {
			Expect(view.Error).To(BeEmpty())
		})
	})

	When("the caption is not English", func() {
		BeforeEach(func() {
			res.Caption = &vision.Caption{Text: "un perro sentado en la hierba", Confidence: 0.8}
		})

		It("still speaks in en-US", func() {
			Expect(view.Speak.Lang).To(Equal(SpeechLang))
			Expect(view.Speak.Text).To(Equal("un perro sentado en la hierba"))
		})
	})

	When("no tag is above the threshold", func() {
		BeforeEach(func() {
			res.Tags = []vision.Tag{{Name: "animal", Confidence: 0.4}, {Name: "edge", Confidence: 0.5}}
		})

		It("shows the caption without a tag line", func() {
			Expect(view.Caption).To(Equal("a dog sitting on grass"))
			Expect(view.Tags).To(BeEmpty())
			Expect(view.TagLine()).To(BeEmpty())
		})
	})

	When("there are tags but no caption", func() {
		BeforeEach(func() {
			res.Caption = nil
		})

		It("shows the tag line", func() {
			Expect(view.TagLine()).To(Equal("dog, grass"))
		})

		It("does not speak", func() {
			Expect(view.Speak).To(BeNil())
			Expect(view.Caption).To(BeEmpty())
		})
	})

	When("the caption text is empty", func() {
		BeforeEach(func() {
			res.Caption = &vision.Caption{Text: "", Confidence: 0.1}
		})

		It("does not speak", func() {
			Expect(view.Speak).To(BeNil())
		})
	})

	When("the analysis fails", func() {
		BeforeEach(func() {
			err = &vision.Error{Kind: vision.KindAuth, Message: "azure vision API error (status 401): Access denied"}
		})

		It("is failed", func() {
			Expect(view.State).To(Equal(StateFailed))
		})

		It("carries the failure description", func() {
			Expect(view.Error).To(ContainSubstring("Access denied"))
		})

		It("shows no caption, tags or speech even if a result came back", func() {
			Expect(view.Caption).To(BeEmpty())
			Expect(view.Tags).To(BeEmpty())
			Expect(view.Speak).To(BeNil())
		})
	})

	When("the analysis fails with a plain error", func() {
		BeforeEach(func() {
			res = nil
			err = errors.New("boom")
		})

		It("renders it the same way", func() {
			Expect(view.State).To(Equal(StateFailed))
			Expect(view.Error).To(Equal("An error occurred during analysis: boom"))
		})
	})

	When("no photo was captured", func() {
		BeforeEach(func() {
			p = Photo{}
			err = errors.New("ignored")
		})

		It("is idle with no output", func() {
			Expect(view).To(Equal(View{State: StateIdle}))
		})
	})

	When("there is neither a result nor an error", func() {
		BeforeEach(func() {
			res = nil
		})

		It("is failed", func() {
			Expect(view.State).To(Equal(StateFailed))
			Expect(view.Speak).To(BeNil())
		})
	})
})
