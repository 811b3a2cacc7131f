package vision

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RelevantTags", func() {
	var (
		tags     []Tag
		relevant []Tag
	)

	JustBeforeEach(func() {
		relevant = RelevantTags(tags)
	})

	When("tags straddle the threshold", func() {
		BeforeEach(func() {
			tags = []Tag{
				{Name: "dog", Confidence: 0.95},
				{Name: "animal", Confidence: 0.4},
				{Name: "grass", Confidence: 0.6},
				{Name: "outdoor", Confidence: 0.5},
				{Name: "mammal", Confidence: 0.500001},
			}
		})

		It("keeps only tags strictly above 0.5 in the order received", func() {
			Expect(relevant).To(Equal([]Tag{
				{Name: "dog", Confidence: 0.95},
				{Name: "grass", Confidence: 0.6},
				{Name: "mammal", Confidence: 0.500001},
			}))
		})

		It("does not modify the input", func() {
			Expect(tags).To(HaveLen(5))
			Expect(tags[1].Name).To(Equal("animal"))
		})
	})

	When("a tag sits exactly on the threshold", func() {
		BeforeEach(func() {
			tags = []Tag{{Name: "edge", Confidence: TagThreshold}}
		})

		It("excludes it", func() {
			Expect(relevant).To(BeEmpty())
		})
	})

	When("there are no tags", func() {
		BeforeEach(func() {
			tags = nil
		})

		It("returns an empty slice", func() {
			Expect(relevant).NotTo(BeNil())
			Expect(relevant).To(BeEmpty())
		})
	})
})
